package mdcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/asstag/internal/config"
)

func TestNewCmdMD(t *testing.T) {
	cmd := NewCmdMD()
	assert.Equal(t, "md", cmd.Use)
	assert.Len(t, cmd.Commands(), 2)
}

func TestRunTo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		html     bool
		expected string
	}{
		{
			name:     "bold",
			input:    `This is {\b1}bold{\b0} text`,
			expected: "This is **bold** text\n",
		},
		{
			name:     "html",
			input:    `{\i1}x{\i0}\Ny`,
			html:     true,
			expected: "<em>x</em><br>y\n",
		},
		{
			name:     "unrelated tags dropped",
			input:    `{\pos(1,2)\fs20}plain`,
			expected: "plain\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			opts := &toOptions{html: tt.html, out: &out, in: strings.NewReader("")}
			require.NoError(t, runTo([]string{tt.input}, opts, &config.Config{}))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestRunTo_Strict(t *testing.T) {
	var out bytes.Buffer
	opts := &toOptions{out: &out, in: strings.NewReader("")}
	require.Error(t, runTo([]string{`{\zz}x`}, opts, &config.Config{Strict: true}))
}

func TestRunFrom(t *testing.T) {
	var out bytes.Buffer
	opts := &fromOptions{out: &out, in: strings.NewReader("")}

	require.NoError(t, runFrom([]string{"Hello *world* and **bold**"}, opts))
	assert.Equal(t, `Hello {\i1}world{\i0} and {\b1}bold`+"\n", out.String())
}

func TestRunFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody\n"), 0644))

	var out bytes.Buffer
	opts := &fromOptions{file: path, out: &out, in: strings.NewReader("")}

	require.NoError(t, runFrom(nil, opts))
	assert.Equal(t, `{\b1}Title{\b0}\Nbody`+"\n", out.String())
}

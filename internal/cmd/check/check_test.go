package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/pkg/asstext"
)

func TestRunCheck_Clean(t *testing.T) {
	input := strings.Join([]string{
		`{\pos(10,20)\an8}{\b1}Hello{\b0} world`,
		`{\fad(100,200)\i1}a\Nb{\r}c`,
		`plain text`,
	}, "\n")

	var out bytes.Buffer
	opts := &checkOptions{out: &out, in: strings.NewReader(input)}
	cfg := &config.Config{NoColor: true, Workers: 2}

	require.NoError(t, runCheck(context.Background(), opts, cfg))
	assert.Contains(t, out.String(), "3 events checked")
	assert.NotContains(t, out.String(), "error")
}

func TestRunCheck_ReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.txt")
	require.NoError(t, os.WriteFile(path, []byte("{\\b1}ok\n{\\bogus}bad\n"), 0644))

	var out bytes.Buffer
	opts := &checkOptions{file: path, out: &out, in: strings.NewReader("")}
	cfg := &config.Config{OutputFormat: "plain"}

	err := runCheck(context.Background(), opts, cfg)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 events have problems", err.Error())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1\tok\t", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2\terror\terror [UNRECOGNIZED_TAG] at 1:"))
}

func TestRunCheck_JSONHasNoSummary(t *testing.T) {
	var out bytes.Buffer
	opts := &checkOptions{out: &out, in: strings.NewReader(`{\i1}x`)}
	cfg := &config.Config{OutputFormat: "json"}

	require.NoError(t, runCheck(context.Background(), opts, cfg))
	assert.NotContains(t, out.String(), "events checked")
	assert.Contains(t, out.String(), `"status": "ok"`)
}

func TestRunCheck_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	opts := &checkOptions{out: &out, in: strings.NewReader("a\nb\n")}
	err := runCheck(ctx, opts, &config.Config{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckEvent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		problems int
	}{
		{"clean", `{\b1}x{\i1}y`, 0},
		{"unknown tag", `{\zz}x`, 1},
		{"two unknown contents", `{\zz}x{\yy}`, 2},
		{"unclosed brace is text", `{\b1 x`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := asstext.Parse(tt.text, true)
			assert.Len(t, checkEvent(tt.text, pr), tt.problems)
		})
	}
}

func TestRecomposes(t *testing.T) {
	for _, text := range []string{
		`{\move(1,2,3,4)\pos(5,6)}{\b1}A{\b1}B`,
		`{\r\fs20}x\h{\c&H0000FF&}y`,
		`a\{}Nb`,
	} {
		assert.True(t, recomposes(asstext.Parse(text, false).Elements), text)
	}
}

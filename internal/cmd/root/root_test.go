package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"ASSTAG_STRICT", "ASSTAG_OUTPUT", "ASSTAG_WORKERS", "ASSTAG_LOG_LEVEL", "ASSTAG_LOG_FILE", "ASSTAG_NO_COLOR"} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewCmdRoot()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewCmdRoot(t *testing.T) {
	cmd := NewCmdRoot()
	assert.Equal(t, "asstag", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"init", "parse", "check", "extract", "compose", "md", "config", "completion"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "output", "no-color", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestExecute_CompleteOutputFormats(t *testing.T) {
	out, _, err := execute(t, "", "__complete", "parse", "--output", "")
	require.NoError(t, err)
	assert.Equal(t, "table\njson\nplain\n:4\n", out)
}

func TestExecute_ExtractThenCompose(t *testing.T) {
	text := `{\pos(10,20)\an8}{\b1}Hello{\i1}\Nworld`
	doc, _, err := execute(t, "", "extract", text)
	require.NoError(t, err)

	out, _, err := execute(t, doc, "compose")
	require.NoError(t, err)
	assert.Equal(t, text+"\n", out)
}

func TestExecute_ParsePlain(t *testing.T) {
	out, _, err := execute(t, "", "parse", "-o", "plain", `{\fs20}x`)
	require.NoError(t, err)
	assert.Equal(t, "1\ttag\tfs\t20\n1\ttext\t\tx\n", out)
}

func TestExecute_StrictFlag(t *testing.T) {
	_, _, err := execute(t, "", "parse", "--strict", `{\zz}x`)
	require.Error(t, err)
}

func TestExecute_InvalidOutput(t *testing.T) {
	_, _, err := execute(t, "", "parse", "-o", "xml", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestExecute_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "", "--log-level", "loud", "parse", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestExecute_DebugLogging(t *testing.T) {
	_, errOut, err := execute(t, "", "--log-level", "debug", "parse", `{\zz}x`)
	require.NoError(t, err)
	assert.Contains(t, errOut, "DBG starting")
}

func TestExecute_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "asstag.log")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ASSTAG_LOG_FILE", logPath)

	cmd := NewCmdRoot()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "debug", "md", "from", "*hi*"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, logPath)
}

func TestExecute_Version(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "asstag version dev")
}

package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInit_TextHandler(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger, closeFn, err := Init(Options{Level: "info", Writer: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("parsed", "events", 3, "file", "my subs.ass")
	slog.Warn("via default", "raw", `\unknown`)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF parsed events=3 file=\"my subs.ass\"\n")
	assert.Contains(t, out, `WRN via default raw="\\unknown"`)
}

func TestInit_GroupsAndAttrs(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger, _, err := Init(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	logger.With("cmd", "check").WithGroup("event").Debug("diag", "pos", 10)
	assert.Equal(t, "DBG diag cmd=check event.pos=10\n", buf.String())
}

func TestInit_JSONConsole(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger, _, err := Init(Options{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hello", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"n":1`)
}

func TestInit_File(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "asstag.log")
	var buf bytes.Buffer
	logger, closeFn, err := Init(Options{Level: "info", File: path, Writer: &buf})
	require.NoError(t, err)

	logger.Info("to both", "k", "v")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both"`)
	assert.Contains(t, string(data), `"ver":`)
	assert.Contains(t, buf.String(), "INF to both k=v")
}

func TestInit_BadLevel(t *testing.T) {
	_, _, err := Init(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asstag.log")
	for _, name := range []string{
		"asstag.log",
		"asstag-2026-10-01T10-00-00.000.log",
		"asstag-2026-10-02T10-00-00.000.log.gz",
		"other.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	files, err := Files(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		path,
		filepath.Join(dir, "asstag-2026-10-01T10-00-00.000.log"),
		filepath.Join(dir, "asstag-2026-10-02T10-00-00.000.log.gz"),
	}, files)
}

func TestFiles_NoneConfigured(t *testing.T) {
	files, err := Files("")
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = Files(filepath.Join(t.TempDir(), "missing.log"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

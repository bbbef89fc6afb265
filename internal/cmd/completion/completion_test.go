package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRoot mirrors the global flags of the asstag root command and adds
// one subcommand with a --file flag.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "asstag"}
	root.PersistentFlags().StringP("config", "c", "", "")
	root.PersistentFlags().StringP("output", "o", "", "")
	root.PersistentFlags().String("log-level", "", "")

	extract := &cobra.Command{Use: "extract", RunE: func(*cobra.Command, []string) error { return nil }}
	extract.Flags().StringP("file", "f", "", "")
	root.AddCommand(extract)
	root.AddCommand(NewCmdCompletion())

	require.NoError(t, RegisterFlagValues(root))
	return root
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// completions runs cobra's hidden __complete command and splits its output
// into candidates and the trailing directive line.
func completions(t *testing.T, args ...string) ([]string, string) {
	t.Helper()
	out, err := run(t, newTestRoot(t), append([]string{cobra.ShellCompRequestCmd}, args...)...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	return lines[:len(lines)-1], lines[len(lines)-1]
}

func TestNewCmdCompletion(t *testing.T) {
	cmd := NewCmdCompletion()
	assert.Equal(t, "completion", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, names)
}

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "bash completion V2 for asstag"},
		{"zsh", "#compdef asstag"},
		{"fish", "complete -c asstag"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := run(t, newTestRoot(t), "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.marker)
		})
	}
}

func TestCompletionScripts_RejectArgs(t *testing.T) {
	_, err := run(t, newTestRoot(t), "completion", "zsh", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRegisterFlagValues(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      []string
		directive string
	}{
		{
			name:      "output formats",
			args:      []string{"extract", "--output", ""},
			want:      []string{"table", "json", "plain"},
			directive: ":4",
		},
		{
			name:      "log levels",
			args:      []string{"--log-level", ""},
			want:      []string{"debug", "info", "warn", "error"},
			directive: ":4",
		},
		{
			name:      "config file extensions",
			args:      []string{"extract", "--config", ""},
			want:      []string{"yml", "yaml"},
			directive: ":8",
		},
		{
			name:      "event file",
			args:      []string{"extract", "--file", ""},
			want:      []string{},
			directive: ":0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := completions(t, tt.args...)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.directive, directive)
		})
	}
}

func TestRegisterFlagValues_MissingFlags(t *testing.T) {
	root := &cobra.Command{Use: "asstag"}
	root.AddCommand(NewCmdCompletion())
	assert.NoError(t, RegisterFlagValues(root))
}

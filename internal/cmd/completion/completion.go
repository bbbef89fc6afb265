// Package completion provides shell completion scripts and flag value
// completion for asstag.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/log"
	"github.com/open-cli-collective/asstag/internal/view"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:    "bash",
		install: "source <(asstag completion bash)",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		name:    "zsh",
		install: `asstag completion zsh > "${fpath[1]}/_asstag"`,
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:    "fish",
		install: "asstag completion fish > ~/.config/fish/completions/asstag.fish",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:    "powershell",
		install: "asstag completion powershell | Out-String | Invoke-Expression",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCmdCompletion creates the completion command with one subcommand per
// supported shell.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for asstag.

Completion covers commands, flags, and the values of --output and
--log-level.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(&cobra.Command{
			Use:                   sh.name,
			Short:                 fmt.Sprintf("Generate %s completion script", sh.name),
			Example:               "  " + sh.install,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return sh.gen(cmd.Root(), cmd.OutOrStdout())
			},
		})
	}

	return cmd
}

// RegisterFlagValues adds value completion for the global flags of root:
// output formats, log levels and YAML config files. Every subcommand with a
// --file flag completes file names.
func RegisterFlagValues(root *cobra.Command) error {
	fixed := map[string][]string{
		"output":    view.ValidFormats(),
		"log-level": log.ValidLevels,
	}
	for name, values := range fixed {
		if root.PersistentFlags().Lookup(name) == nil {
			continue
		}
		if err := root.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)); err != nil {
			return err
		}
	}
	if root.PersistentFlags().Lookup("config") != nil {
		if err := root.MarkPersistentFlagFilename("config", "yml", "yaml"); err != nil {
			return err
		}
	}

	var walk func(*cobra.Command) error
	walk = func(c *cobra.Command) error {
		if c.LocalNonPersistentFlags().Lookup("file") != nil {
			if err := c.MarkFlagFilename("file"); err != nil {
				return err
			}
		}
		for _, sub := range c.Commands() {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}

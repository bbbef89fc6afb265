// Package mdcmd provides the Markdown bridge commands.
package mdcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdMD creates the md command.
func NewCmdMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "md",
		Aliases: []string{"markdown"},
		Short:   "Convert between event text and Markdown",
		Long: `Commands for converting the bold, italic, underline and strikeout
formatting of event text to Markdown (or HTML) and back.`,
	}

	cmd.AddCommand(NewCmdTo())
	cmd.AddCommand(NewCmdFrom())

	return cmd
}

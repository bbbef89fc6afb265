// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// envVars lists every environment variable the config honors.
var envVars = []string{
	"ASSTAG_STRICT", "ASSTAG_OUTPUT", "ASSTAG_WORKERS", "ASSTAG_LOG_LEVEL",
	"ASSTAG_LOG_FILE", "ASSTAG_NO_COLOR", "NO_COLOR",
}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage asstag configuration",
		Long:  `Commands for viewing and clearing asstag configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/log"
)

type clearOptions struct {
	configPath string
	logs       bool
	noColor    bool
	out        io.Writer
}

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	opts := &clearOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long: `Delete the asstag configuration file.

With --logs, the log file named by the configuration (log_file or
ASSTAG_LOG_FILE) and its rotated backups are deleted too. ASSTAG_*
environment variables still apply after clearing.`,
		Example: `  # Clear config
  asstag config clear

  # Clear config and debug logs
  asstag config clear --logs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runClear(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.logs, "logs", false, "Also delete the log file and its rotated backups")

	return cmd
}

func runClear(opts *clearOptions) error {
	if opts.noColor {
		color.NoColor = true
	}
	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	// The log path has to be read before the file that names it is gone.
	var logFile string
	if cfg, err := config.LoadWithEnv(opts.configPath); err == nil {
		logFile = cfg.LogFile
	}

	err := os.Remove(opts.configPath)
	switch {
	case os.IsNotExist(err):
		_, _ = green.Fprintln(opts.out, "✓ No config file to remove")
	case err != nil:
		return fmt.Errorf("failed to remove config file: %w", err)
	default:
		_, _ = green.Fprintf(opts.out, "✓ Configuration cleared from %s\n", opts.configPath)
	}

	if opts.logs {
		if err := clearLogs(logFile, opts.out, green, dim); err != nil {
			return err
		}
	}

	var active []string
	for _, name := range envVars {
		if v := os.Getenv(name); v != "" {
			active = append(active, name+"="+v)
		}
	}
	if len(active) > 0 {
		_, _ = dim.Fprintf(opts.out, "\nStill set in the environment: %s\n", strings.Join(active, " "))
	}

	return nil
}

func clearLogs(logFile string, out io.Writer, green, dim *color.Color) error {
	if logFile == "" {
		_, _ = dim.Fprintln(out, "No log file configured")
		return nil
	}
	files, err := log.Files(logFile)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove log file: %w", err)
		}
	}
	_, _ = green.Fprintf(out, "✓ Removed %d log file(s) for %s\n", len(files), logFile)
	return nil
}

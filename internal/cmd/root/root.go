// Package root provides the root command for the asstag CLI.
package root

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/check"
	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/cmd/completion"
	"github.com/open-cli-collective/asstag/internal/cmd/compose"
	"github.com/open-cli-collective/asstag/internal/cmd/configcmd"
	"github.com/open-cli-collective/asstag/internal/cmd/extract"
	initcmd "github.com/open-cli-collective/asstag/internal/cmd/init"
	"github.com/open-cli-collective/asstag/internal/cmd/mdcmd"
	"github.com/open-cli-collective/asstag/internal/cmd/parse"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/log"
	"github.com/open-cli-collective/asstag/internal/version"
)

// NewCmdRoot creates the root command for asstag.
func NewCmdRoot() *cobra.Command {
	closeLog := func() error { return nil }

	cmd := &cobra.Command{
		Use:   "asstag",
		Short: "Parse and rewrite ASS subtitle override tags",
		Long: `asstag is a CLI tool for working with the override tags in ASS
(Advanced SubStation Alpha) event text.

It parses event text losslessly, resolves which tags take effect, and
converts events to and from an editable document or Markdown.

Get started by running: asstag init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Logging must come up even when the config is broken, so that
			// 'asstag config clear' keeps working.
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				cfg = &config.Config{}
				if cmd.Flags().Changed("log-level") {
					cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
				}
			}
			_, closeFn, initErr := log.Init(log.Options{Level: cfg.LogLevel, File: cfg.LogFile, Writer: cmd.ErrOrStderr()})
			if initErr != nil {
				return initErr
			}
			closeLog = closeFn
			if err != nil {
				slog.Debug("config not loaded", "err", err)
			}
			slog.Debug("starting", "cmd", cmd.CommandPath(), "version", version.Version)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeLog()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/asstag/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: warn)")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(extract.NewCmdExtract())
	cmd.AddCommand(compose.NewCmdCompose())
	cmd.AddCommand(mdcmd.NewCmdMD())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	if err := completion.RegisterFlagValues(cmd); err != nil {
		panic(err)
	}

	return cmd
}

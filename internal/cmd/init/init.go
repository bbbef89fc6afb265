// Package init provides the init command for asstag.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/log"
	"github.com/open-cli-collective/asstag/internal/view"
)

type initOptions struct {
	strict   bool
	output   string
	workers  int
	logLevel string
	noInput  bool
	force    bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{output: "table", logLevel: "warn"}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize asstag configuration",
		Long: `Initialize asstag with your preferred defaults.

This command will guide you through choosing the output format, strict
parsing, the number of concurrent parsers and the log level. The
configuration will be saved to ~/.config/asstag/config.yml.`,
		Example: `  # Interactive setup
  asstag init

  # Write a config without prompting
  asstag init --no-input --strict --output json --log-level info`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("output") {
				opts.output, _ = cmd.Flags().GetString("output")
			}
			if cmd.Flags().Changed("log-level") {
				opts.logLevel, _ = cmd.Flags().GetString("log-level")
			}
			return runInit(cmdutil.ConfigPath(cmd), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict parsing by default")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Default number of concurrent parsers (0: one per CPU)")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Use the flag values without prompting")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config without asking")

	return cmd
}

func runInit(configPath string, out io.Writer, opts *initOptions) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.noInput {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		Strict:       opts.strict,
		OutputFormat: opts.output,
		Workers:      opts.workers,
		LogLevel:     opts.logLevel,
	}

	if !opts.noInput {
		if err := runForm(cfg); err != nil {
			return err
		}
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, `  asstag parse '{\b1}Hello{\b0} world'`)
	fmt.Fprintln(out, "  asstag check --file events.txt")

	return nil
}

func runForm(cfg *config.Config) error {
	workers := strconv.Itoa(cfg.Workers)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("Default format for command output").
				Options(huh.NewOptions(view.ValidFormats()...)...).
				Value(&cfg.OutputFormat),

			huh.NewConfirm().
				Title("Strict parsing").
				Description("Treat unrecognized override block content as an error").
				Value(&cfg.Strict),

			huh.NewInput().
				Title("Workers").
				Description("Concurrent parsers for files of events (0: one per CPU)").
				Value(&workers).
				Validate(validateWorkers),

			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions(log.ValidLevels...)...).
				Value(&cfg.LogLevel),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	n, err := parseWorkers(workers)
	if err != nil {
		return err
	}
	cfg.Workers = n
	return nil
}

func validateWorkers(s string) error {
	_, err := parseWorkers(s)
	return err
}

func parseWorkers(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("workers must be a whole number")
	}
	if n < 0 {
		return 0, errors.New("workers must not be negative")
	}
	return n, nil
}

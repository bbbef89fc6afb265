package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current asstag configuration with source indicators.`,
		Example: `  # Show current config
  asstag config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmdutil.ConfigPath(cmd), cmd.OutOrStdout(), noColor)
		},
	}

	return cmd
}

func runShow(configPath string, out io.Writer, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg := *fileCfg
	cfg.LoadFromEnv()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Fprintf(out, "%-12s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(out, "-")
			return
		}

		fmt.Fprint(out, value)

		// Determine source
		source := "config"
		if fileErr != nil || fileValue != value {
			source = "-"
		}
		for _, envVar := range envVars {
			if os.Getenv(envVar) != "" {
				source = envVar
				break
			}
		}

		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}

	printField("Strict", strconv.FormatBool(cfg.Strict), strconv.FormatBool(fileCfg.Strict), "ASSTAG_STRICT")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "ASSTAG_OUTPUT")
	printField("Workers", intField(cfg.Workers), intField(fileCfg.Workers), "ASSTAG_WORKERS")
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, "ASSTAG_LOG_LEVEL")
	printField("Log file", cfg.LogFile, fileCfg.LogFile, "ASSTAG_LOG_FILE")
	printField("No color", strconv.FormatBool(cfg.NoColor), strconv.FormatBool(fileCfg.NoColor), "ASSTAG_NO_COLOR", "NO_COLOR")

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}
	if err := cfg.Validate(); err != nil {
		_, _ = color.New(color.FgYellow).Fprintf(out, "! %v\n", err)
	}

	return nil
}

// intField shows zero as unset.
func intField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Package cmdutil holds helpers shared by asstag commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/view"
)

// ConfigPath returns the --config flag value, or the default path.
func ConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads the config file and environment, then applies any flags
// set on the command line. The result is validated.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(ConfigPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFormat, _ = flags.GetString("output")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'asstag init' to reconfigure)", err)
	}
	return cfg, nil
}

// NewRenderer returns a renderer for cfg writing to w.
func NewRenderer(cfg *config.Config, w io.Writer) *view.Renderer {
	r := view.NewRenderer(view.Format(cfg.OutputFormat), cfg.NoColor)
	r.SetWriter(w)
	return r
}

// ReadInput returns the command input: the file named by file ("-" is
// stdin), else the first argument, else everything on in.
func ReadInput(in io.Reader, args []string, file string) (string, error) {
	switch {
	case file == "-":
		return readAll(in)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return args[0], nil
	default:
		return readAll(in)
	}
}

func readAll(in io.Reader) (string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// Event is one event text with its 1-based source line.
type Event struct {
	Line int
	Text string
}

// SplitEvents splits input into one event per line, skipping blank lines.
func SplitEvents(input string) []Event {
	var events []Event
	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		events = append(events, Event{Line: i + 1, Text: line})
	}
	return events
}

// Texts returns the event texts in order.
func Texts(events []Event) []string {
	texts := make([]string, len(events))
	for i, e := range events {
		texts[i] = e.Text
	}
	return texts
}

// SingleEvent trims the line ending a shell or editor leaves after one event.
func SingleEvent(input string) string {
	return strings.TrimRight(input, "\r\n")
}

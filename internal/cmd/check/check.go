// Package check provides the check command.
package check

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/view"
	"github.com/open-cli-collective/asstag/pkg/asstext"
)

type checkOptions struct {
	file string
	out  io.Writer
	in   io.Reader
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a file of event texts",
		Long: `Strictly parse every non-empty line as one event and report:

  - unrecognized override block content
  - events that do not render back to their exact source text
  - events whose tags and segments change after being recomposed

Exits with a non-zero status when any event has a problem.`,
		Example: `  # Check a file
  asstag check --file events.txt

  # Check stdin with four parsers
  cat events.txt | asstag check --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runCheck(cmd.Context(), opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read events from a file, one per line (default: stdin)")
	cmd.Flags().Int("workers", 0, "Number of concurrent parsers (default: one per CPU)")

	return cmd
}

func runCheck(ctx context.Context, opts *checkOptions, cfg *config.Config) error {
	input, err := cmdutil.ReadInput(opts.in, nil, opts.file)
	if err != nil {
		return err
	}
	events := cmdutil.SplitEvents(input)

	results, err := asstext.ParseAll(ctx, cmdutil.Texts(events), true, cfg.EffectiveWorkers())
	if err != nil {
		return err
	}

	var rows [][]string
	failed := 0
	for i, pr := range results {
		ev := events[i]
		problems := checkEvent(ev.Text, pr)
		ln := strconv.Itoa(ev.Line)
		if len(problems) == 0 {
			rows = append(rows, []string{ln, "ok", ""})
			continue
		}
		failed++
		for _, p := range problems {
			rows = append(rows, []string{ln, "error", p})
		}
	}

	renderer := cmdutil.NewRenderer(cfg, opts.out)
	renderer.RenderTable([]string{"LINE", "STATUS", "DETAIL"}, rows)

	if renderer.Format() == view.FormatTable {
		fmt.Fprintln(opts.out)
		if failed == 0 {
			renderer.Success(fmt.Sprintf("%d events checked", len(events)))
		} else {
			renderer.Warning(fmt.Sprintf("%d of %d events have problems", failed, len(events)))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d events have problems", failed, len(events))
	}
	return nil
}

// checkEvent lists the problems found in one strictly parsed event.
func checkEvent(text string, pr *asstext.ParseResult) []string {
	var problems []string
	for _, d := range pr.Diagnostics {
		problems = append(problems, d.String())
	}
	if pr.Render() != text {
		problems = append(problems, "rendered text differs from source")
	}
	if !recomposes(pr.Elements) {
		problems = append(problems, "tags or segments change after recomposing")
	}
	return problems
}

// recomposes reports whether composing the extracted model and parsing the
// result extracts the same model again.
func recomposes(elements []asstext.TextElement) bool {
	events, segments := asstext.ExtractAll(elements)
	text := asstext.Render(asstext.ComposeAll(events, segments))
	events2, segments2 := asstext.ExtractAll(asstext.Parse(text, false).Elements)

	if !maps.Equal(events, events2) || len(segments) != len(segments2) {
		return false
	}
	for i := range segments {
		if !segments[i].Equal(segments2[i]) {
			return false
		}
	}
	return true
}

// Package parse provides the parse command.
package parse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/pkg/asstext"
)

type parseOptions struct {
	file string
	out  io.Writer
	in   io.Reader
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Show the elements of event texts",
		Long: `Parse event texts and list their elements: plain text, escapes,
recognized override tags and unrecognized block content.

With --file (or stdin) every non-empty line is parsed as one event.`,
		Example: `  # Parse one event
  asstag parse '{\pos(10,20)\b1}Hello\Nworld'

  # Parse a file of events strictly, as JSON
  asstag parse --file events.txt --strict -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runParse(cmd.Context(), args, opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read events from a file, one per line (- for stdin)")
	cmd.Flags().Bool("strict", false, "Report unrecognized block content as errors")
	cmd.Flags().Int("workers", 0, "Number of concurrent parsers (default: one per CPU)")

	return cmd
}

func runParse(ctx context.Context, args []string, opts *parseOptions, cfg *config.Config) error {
	input, err := cmdutil.ReadInput(opts.in, args, opts.file)
	if err != nil {
		return err
	}

	var events []cmdutil.Event
	if opts.file == "" && len(args) > 0 {
		events = []cmdutil.Event{{Line: 1, Text: cmdutil.SingleEvent(input)}}
	} else {
		events = cmdutil.SplitEvents(input)
	}

	results, err := asstext.ParseAll(ctx, cmdutil.Texts(events), cfg.Strict, cfg.EffectiveWorkers())
	if err != nil {
		return err
	}

	var rows [][]string
	for i, pr := range results {
		rows = append(rows, elementRows(events[i].Line, pr.Elements)...)
	}

	renderer := cmdutil.NewRenderer(cfg, opts.out)
	renderer.RenderTable([]string{"LINE", "KIND", "NAME", "VALUE"}, rows)

	var errs []error
	for i, pr := range results {
		if err := pr.Err(); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", events[i].Line, err))
		}
	}
	return errors.Join(errs...)
}

// elementRows flattens elements into table rows, one per block element.
func elementRows(line int, elements []asstext.TextElement) [][]string {
	ln := strconv.Itoa(line)
	var rows [][]string
	for _, el := range elements {
		switch e := el.(type) {
		case asstext.PlainText:
			rows = append(rows, []string{ln, "text", "", e.Content})
		case asstext.SpecialChar:
			rows = append(rows, []string{ln, "special", "", e.String()})
		case asstext.OverrideBlock:
			if len(e.Elements) == 0 {
				rows = append(rows, []string{ln, "block", "", "{}"})
			}
			for _, be := range e.Elements {
				switch b := be.(type) {
				case asstext.OverrideTag:
					rows = append(rows, []string{ln, "tag", b.Name, b.Param})
				case asstext.Comment:
					rows = append(rows, []string{ln, "comment", "", b.Raw})
				}
			}
		}
	}
	return rows
}

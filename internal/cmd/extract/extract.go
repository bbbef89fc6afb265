// Package extract provides the extract command.
package extract

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/document"
	"github.com/open-cli-collective/asstag/internal/view"
	"github.com/open-cli-collective/asstag/pkg/asstext"
)

type extractOptions struct {
	file string
	out  io.Writer
	in   io.Reader
}

// NewCmdExtract creates the extract command.
func NewCmdExtract() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract the effective tags and text segments of an event",
		Long: `Resolve an event text into its effective event-level tags and its
text segments, each with the inline tags in force, and print the result
as a YAML document (JSON with -o json).

The document can be edited and turned back into event text with
'asstag compose'.`,
		Example: `  # Extract one event
  asstag extract '{\pos(10,20)\b1}Hello{\b0} world'

  # As JSON
  asstag extract -o json '{\an8}Top'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runExtract(args, opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the event from a file (- for stdin)")
	cmd.Flags().Bool("strict", false, "Fail on unrecognized block content")

	return cmd
}

func runExtract(args []string, opts *extractOptions, cfg *config.Config) error {
	input, err := cmdutil.ReadInput(opts.in, args, opts.file)
	if err != nil {
		return err
	}

	pr := asstext.Parse(cmdutil.SingleEvent(input), cfg.Strict)
	if err := pr.Err(); err != nil {
		return err
	}

	events, segments := asstext.ExtractAll(pr.Elements)
	doc, err := document.FromModel(events, segments)
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}

	format := "yaml"
	if view.Format(cfg.OutputFormat) == view.FormatJSON {
		format = "json"
	}
	data, err := doc.Marshal(format)
	if err != nil {
		return err
	}

	_, err = opts.out.Write(data)
	if err == nil && format == "json" {
		_, err = fmt.Fprintln(opts.out)
	}
	return err
}

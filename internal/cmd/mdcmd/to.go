package mdcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/pkg/asstext"
	"github.com/open-cli-collective/asstag/pkg/md"
)

type toOptions struct {
	file string
	html bool
	out  io.Writer
	in   io.Reader
}

// NewCmdTo creates the md to command.
func NewCmdTo() *cobra.Command {
	opts := &toOptions{}

	cmd := &cobra.Command{
		Use:   "to [text]",
		Short: "Convert event text to Markdown",
		Long: `Convert the formatting of an event text to Markdown. Tags other than
bold, italic, underline and strikeout are dropped.`,
		Example: `  # Convert one event
  asstag md to '{\b1}Hello{\b0} {\i1}world'

  # Show the intermediate HTML
  asstag md to --html '{\u1}under'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runTo(args, opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the event from a file (- for stdin)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Print HTML instead of Markdown")
	cmd.Flags().Bool("strict", false, "Fail on unrecognized block content")

	return cmd
}

func runTo(args []string, opts *toOptions, cfg *config.Config) error {
	input, err := cmdutil.ReadInput(opts.in, args, opts.file)
	if err != nil {
		return err
	}

	pr := asstext.Parse(cmdutil.SingleEvent(input), cfg.Strict)
	if err := pr.Err(); err != nil {
		return err
	}
	_, segments := asstext.ExtractAll(pr.Elements)

	if opts.html {
		_, err = fmt.Fprintln(opts.out, md.ToHTML(segments))
		return err
	}

	markdown, err := md.ToMarkdown(segments)
	if err != nil {
		return fmt.Errorf("failed to convert to markdown: %w", err)
	}
	_, err = fmt.Fprintln(opts.out, markdown)
	return err
}

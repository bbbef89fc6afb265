package mdcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/pkg/asstext"
	"github.com/open-cli-collective/asstag/pkg/md"
)

type fromOptions struct {
	file string
	out  io.Writer
	in   io.Reader
}

// NewCmdFrom creates the md from command.
func NewCmdFrom() *cobra.Command {
	opts := &fromOptions{}

	cmd := &cobra.Command{
		Use:   "from [markdown]",
		Short: "Convert Markdown to event text",
		Long: `Convert Markdown to a single event text. Emphasis becomes \i, strong
emphasis and headings \b, strikethrough \s; paragraphs and hard line
breaks become \N.`,
		Example: `  # Convert a file
  asstag md from --file notes.md

  # Convert inline Markdown
  asstag md from 'Hello *world*'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cmdutil.LoadConfig(cmd); err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runFrom(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Markdown file to convert (- for stdin)")

	return cmd
}

func runFrom(args []string, opts *fromOptions) error {
	input, err := cmdutil.ReadInput(opts.in, args, opts.file)
	if err != nil {
		return err
	}

	segments, err := md.FromMarkdown([]byte(input))
	if err != nil {
		return fmt.Errorf("failed to parse markdown: %w", err)
	}

	_, err = fmt.Fprintln(opts.out, asstext.Render(asstext.ComposeAll(nil, segments)))
	return err
}

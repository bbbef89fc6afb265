// Package compose provides the compose command.
package compose

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/asstag/internal/cmd/cmdutil"
	"github.com/open-cli-collective/asstag/internal/document"
	"github.com/open-cli-collective/asstag/pkg/asstext"
)

type composeOptions struct {
	file string
	out  io.Writer
	in   io.Reader
}

// NewCmdCompose creates the compose command.
func NewCmdCompose() *cobra.Command {
	opts := &composeOptions{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build event text from a document",
		Long: `Read a YAML or JSON document as written by 'asstag extract', validate it
and print the event text it describes.

Event tags are written first in one block. Each segment is preceded by a
block holding only the inline tags that changed.`,
		Example: `  # Compose from a file
  asstag compose --file event.yaml

  # Round-trip through an editor
  asstag extract '{\b1}Hi' > event.yaml && asstag compose -f event.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Validates flags and env even though compose has no settings of its own.
			if _, err := cmdutil.LoadConfig(cmd); err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runCompose(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Document to compose (default: stdin)")

	return cmd
}

func runCompose(opts *composeOptions) error {
	input, err := cmdutil.ReadInput(opts.in, nil, opts.file)
	if err != nil {
		return err
	}

	doc, err := document.Load([]byte(input))
	if err != nil {
		return err
	}
	events, segments, err := doc.Model()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(opts.out, asstext.Render(asstext.ComposeAll(events, segments)))
	return err
}

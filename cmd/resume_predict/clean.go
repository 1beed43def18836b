package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-classifier/internal/ingestion"
)

func newCleanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <path>",
		Short: "Print the normalized text of a résumé",
		Long:  "Reads a résumé the same way predict does and prints the text the classifier sees.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return opts.fail(msgMissingArgument)
			}

			appCtx, cleanup, err := opts.openApp(cmd)
			if err != nil {
				fmt.Fprintf(opts.stderr, "Error: %v\n", err)
				return &exitError{code: 1}
			}
			defer cleanup()

			doc, err := opts.readDocument(args[0], appCtx.Config.MaxReadBytes)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(opts.stdout, appCtx.Cleaner.Clean(doc.Text))
			return err
		},
	}
}

// readDocument reads path with the predict command's bounds and reports a
// missing file the way predict does.
func (o *rootOptions) readDocument(path string, maxBytes int) (*ingestion.Document, error) {
	doc, err := ingestion.ReadFile(path, maxBytes)
	if err != nil {
		if ingestion.IsNotFound(err) {
			return nil, o.fail(msgFileNotFound)
		}
		return nil, err
	}
	return doc, nil
}

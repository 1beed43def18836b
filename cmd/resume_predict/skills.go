package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-classifier/internal/observability"
)

func newSkillsCmd(opts *rootOptions) *cobra.Command {
	var byCategory bool

	cmd := &cobra.Command{
		Use:   "skills <path>",
		Short: "Extract skills from a résumé without classifying it",
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

			if byCategory {
				grouped := appCtx.Extractor.ExtractByCategory(doc.Text)
				if appCtx.Config.Verbose {
					observability.NewPrinter(opts.stderr).PrintSkills(grouped)
				}
				return writeJSON(opts.stdout, grouped)
			}

			found := appCtx.Extractor.Extract(doc.Text)
			if found == nil {
				found = []string{}
			}
			return writeJSON(opts.stdout, map[string][]string{"skills": found})
		},
	}

	cmd.Flags().BoolVar(&byCategory, "by-category", false, "Group skills by taxonomy category")
	return cmd
}

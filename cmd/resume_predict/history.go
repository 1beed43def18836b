package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-classifier/internal/db"
	"github.com/jonathan/resume-classifier/internal/observability"
)

var errHistoryNotConfigured = errors.New("prediction history is not configured: set DATABASE_URL or --database-url")

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errHistoryNotConfigured
			}

			store, err := db.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rows, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				if rows == nil {
					rows = []db.Prediction{}
				}
				return writeJSON(opts.stdout, rows)
			}
			observability.NewPrinter(opts.stdout).PrintHistory(rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", db.DefaultHistoryLimit, "Number of predictions to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

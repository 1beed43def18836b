package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-classifier/internal/classify"
	"github.com/jonathan/resume-classifier/internal/db"
	"github.com/jonathan/resume-classifier/internal/observability"
	"github.com/jonathan/resume-classifier/internal/skills"
	"github.com/jonathan/resume-classifier/internal/taxonomy"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration, taxonomy, model and history database",
		Long: "Loads every configured asset strictly and reports each check. " +
			"Exits 1 when any check fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := observability.NewPrinter(opts.stdout)

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				printer.PrintValidation([]observability.Check{{Name: "Configuration", Err: err}})
				return &exitError{code: 1}
			}

			checks := []observability.Check{{
				Name:   "Configuration",
				Detail: fmt.Sprintf("matcher=%s max_read_bytes=%d min_chars=%d", cfg.Matcher, cfg.MaxReadBytes, cfg.MinContentChars),
			}}

			set, err := taxonomy.Load(cfg.SkillsPath)
			check := observability.Check{Name: "Skills taxonomy " + cfg.SkillsPath, Err: err}
			if err == nil {
				check.Detail = fmt.Sprintf("%d technologies, %d tools, %d certifications",
					len(set.Terms(taxonomy.Technologies)),
					len(set.Terms(taxonomy.Tools)),
					len(set.Terms(taxonomy.Certifications)))
				if _, err := skills.NewMatcher(skills.MatcherKind(cfg.Matcher), set.All()); err != nil {
					check.Err = err
				}
			}
			checks = append(checks, check)

			artifact, err := classify.LoadArtifact(cfg.ModelPath)
			check = observability.Check{Name: "Model " + cfg.ModelPath, Err: err}
			if err == nil {
				check.Detail = fmt.Sprintf("version %s, %d classes, %d features",
					artifact.Version, len(artifact.Labels), len(artifact.Vectorizer.Vocabulary))
			}
			checks = append(checks, check)

			if cfg.DatabaseURL != "" {
				store, err := db.Open(cmd.Context(), cfg.DatabaseURL)
				check = observability.Check{Name: "Prediction history", Err: err, Detail: "connected"}
				if err == nil {
					if err := store.Close(); err != nil {
						check.Err = err
					}
				}
				checks = append(checks, check)
			}

			if !printer.PrintValidation(checks) {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-classifier/internal/app"
	"github.com/jonathan/resume-classifier/internal/config"
	"github.com/jonathan/resume-classifier/internal/observability"
	"github.com/jonathan/resume-classifier/internal/pipeline"
)

// Messages printed as {"error": ...} by the predict command.
const (
	msgMissingArgument = "Requires file path argument"
	msgFileNotFound    = pipeline.NotFoundMessage
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	stdout io.Writer
	stderr io.Writer

	configPath      string
	skillsPath      string
	modelPath       string
	maxReadBytes    int
	minContentChars int
	logFile         string
	matcher         string
	databaseURL     string
	verbose         bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "resume_predict <path>",
		Short: "Classify a résumé and extract its skills",
		Long: "Reads a résumé (plain text or HTML), predicts its job category with a TF-IDF " +
			"logistic regression model, extracts skills from a taxonomy and prints one JSON object.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, opts, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to JSON config file (optional)")
	flags.StringVar(&opts.skillsPath, "skills", "", "Path to skills taxonomy JSON/YAML (env RESUME_SKILLS_PATH)")
	flags.StringVar(&opts.modelPath, "model", "", "Path to model artifact JSON (env RESUME_MODEL_PATH)")
	flags.IntVar(&opts.maxReadBytes, "max-read-bytes", 0, "Bytes read per document (env RESUME_MAX_READ_BYTES)")
	flags.IntVar(&opts.minContentChars, "min-chars", 0, "Minimum characters per document (env RESUME_MIN_CONTENT_CHARS)")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file path (env RESUME_LOG_FILE)")
	flags.StringVar(&opts.matcher, "matcher", "", "Skill matcher: regex or trie (env RESUME_MATCHER)")
	flags.StringVar(&opts.databaseURL, "database-url", "", "Prediction history database (env DATABASE_URL)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print progress and a summary to stderr")

	cmd.AddCommand(
		newCleanCmd(opts),
		newSkillsCmd(opts),
		newValidateCmd(opts),
		newServeCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

// loadConfig layers CLI flags over the environment and config file.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("skills") {
		cfg.SkillsPath = o.skillsPath
	}
	if flags.Changed("model") {
		cfg.ModelPath = o.modelPath
	}
	if flags.Changed("max-read-bytes") {
		cfg.MaxReadBytes = o.maxReadBytes
	}
	if flags.Changed("min-chars") {
		cfg.MinContentChars = o.minContentChars
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("matcher") {
		cfg.Matcher = o.matcher
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = o.databaseURL
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp loads configuration, opens the log file and builds the shared
// components. The returned cleanup closes both.
func (o *rootOptions) openApp(cmd *cobra.Command) (*app.Context, func(), error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, logCloser, err := app.OpenLog(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}

	appCtx, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := appCtx.Close(); err != nil {
			logger.Printf("[WARN] Failed to close prediction history: %v", err)
		}
		_ = logCloser.Close()
	}
	return appCtx, cleanup, nil
}

func runPredict(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if len(args) != 1 {
		return opts.fail(msgMissingArgument)
	}
	path := args[0]

	appCtx, cleanup, err := opts.openApp(cmd)
	if err != nil {
		fmt.Fprintf(opts.stderr, "Error: %v\n", err)
		return &exitError{code: 1}
	}
	defer cleanup()

	var onProgress pipeline.ProgressCallback
	printer := observability.NewPrinter(opts.stderr)
	if appCtx.Config.Verbose {
		onProgress = printer.PrintProgress
	}

	processor, err := appCtx.NewProcessor(onProgress)
	if err != nil {
		return err
	}

	result, err := processor.ProcessFile(cmd.Context(), path)
	if err != nil {
		var notFound *pipeline.NotFoundError
		if errors.As(err, &notFound) {
			return opts.fail(msgFileNotFound)
		}
		return err
	}

	if appCtx.Config.Verbose {
		printer.PrintPrediction(result)
	}
	return writeJSON(opts.stdout, result)
}

// fail prints {"error": message} to stdout and exits 1.
func (o *rootOptions) fail(message string) error {
	if err := writeJSON(o.stdout, map[string]string{"error": message}); err != nil {
		return err
	}
	return &exitError{code: 1}
}

// writeJSON prints v as one line of JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

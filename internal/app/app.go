// Package app builds the long-lived components shared by every command: the
// taxonomy, analyzer, cleaner, skill extractor, classifier and optional
// prediction history. Everything is built once and never mutated afterwards.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jonathan/resume-classifier/internal/classify"
	"github.com/jonathan/resume-classifier/internal/config"
	"github.com/jonathan/resume-classifier/internal/db"
	"github.com/jonathan/resume-classifier/internal/nlp"
	"github.com/jonathan/resume-classifier/internal/normalize"
	"github.com/jonathan/resume-classifier/internal/pipeline"
	"github.com/jonathan/resume-classifier/internal/skills"
	"github.com/jonathan/resume-classifier/internal/taxonomy"
)

// Context holds the immutable shared state of a running process.
type Context struct {
	Config     *config.Config
	Logger     *log.Logger
	Taxonomy   *taxonomy.Set
	Analyzer   *nlp.English
	Cleaner    *normalize.Cleaner
	Extractor  *skills.Extractor
	Model      *classify.Pipeline
	Labels     *classify.LabelEncoder
	Classifier *classify.Adapter
	History    db.Store // nil when DATABASE_URL is unset or unreachable
}

// New loads the taxonomy and classifier named by cfg and wires the pipeline
// components. A missing or invalid taxonomy degrades to an empty one; a
// missing or invalid classifier is fatal.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Context, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	set := taxonomy.LoadOrEmpty(cfg.SkillsPath, logger)
	analyzer := nlp.NewEnglish(nlp.WithEntityRuler(nlp.NewEntityRuler(nlp.SkillLabel, set.All())))

	extractor, err := skills.NewExtractor(set, analyzer, skills.MatcherKind(cfg.Matcher), logger)
	if err != nil {
		return nil, err
	}

	model, labels, err := classify.Load(cfg.ModelPath)
	if err != nil {
		logger.Printf("[ERROR] Error loading model: %v", err)
		return nil, err
	}
	logger.Printf("[INFO] Model loaded successfully (%d classes, %d features).", len(labels.Labels()), model.Features())

	c := &Context{
		Config:     cfg,
		Logger:     logger,
		Taxonomy:   set,
		Analyzer:   analyzer,
		Cleaner:    normalize.NewCleaner(analyzer, logger),
		Extractor:  extractor,
		Model:      model,
		Labels:     labels,
		Classifier: classify.NewAdapter(model, labels),
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Printf("[WARN] Prediction history disabled: %v", err)
		} else {
			c.History = store
		}
	}

	return c, nil
}

// NewProcessor returns a Processor over the shared components.
func (c *Context) NewProcessor(onProgress pipeline.ProgressCallback) (*pipeline.Processor, error) {
	var recorder pipeline.Recorder
	if c.History != nil {
		recorder = c.History
	}
	return pipeline.NewProcessor(pipeline.Config{
		Cleaner:         c.Cleaner,
		Extractor:       c.Extractor,
		Classifier:      c.Classifier,
		Recorder:        recorder,
		Logger:          c.Logger,
		MaxReadBytes:    c.Config.MaxReadBytes,
		MinContentChars: c.Config.MinContentChars,
		OnProgress:      onProgress,
	})
}

// Close releases the prediction history connection, if any.
func (c *Context) Close() error {
	if c.History != nil {
		return c.History.Close()
	}
	return nil
}

// OpenLog opens (appending) the log file at path and returns a logger
// writing to it. An empty path logs to stderr.
func OpenLog(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(os.Stderr, "", log.LstdFlags), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return log.New(f, "", log.LstdFlags), f, nil
}

// Package pipeline orchestrates the processing of one résumé document: input
// gates, cleaning, skill extraction and classification, and assembly of the
// result record.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-classifier/internal/ingestion"
	"github.com/jonathan/resume-classifier/internal/types"
)

// Default gate limits.
const (
	DefaultMaxReadBytes    = ingestion.DefaultMaxReadBytes
	DefaultMinContentChars = 50
)

// Step names reported through progress events.
const (
	StepRead     = "read"
	StepGate     = "length_gate"
	StepClean    = "clean"
	StepExtract  = "extract_skills"
	StepClassify = "classify"
	StepAssemble = "assemble"
)

// textSource labels documents that did not come from a file.
const textSource = "-"

// Cleaner produces the classifier's input text; "" means failure.
type Cleaner interface {
	Clean(raw string) string
}

// SkillExtractor finds skills in raw text.
type SkillExtractor interface {
	Extract(raw string) []string
}

// Classifier predicts a category for cleaned text.
type Classifier interface {
	Classify(cleaned string) (*types.ClassificationResult, error)
}

// Recorder persists processed documents. Failures are logged and never
// change the result.
type Recorder interface {
	Record(ctx context.Context, record *types.PredictionRecord) error
}

// ProgressEvent represents a progress update during document processing
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ProgressCallback is called when processing progress occurs. Extraction and
// classification report concurrently, so it must be safe for concurrent use.
type ProgressCallback func(event ProgressEvent)

// Config wires a Processor. Cleaner, Extractor and Classifier are required.
type Config struct {
	Cleaner         Cleaner
	Extractor       SkillExtractor
	Classifier      Classifier
	Recorder        Recorder // optional
	Logger          *log.Logger
	MaxReadBytes    int
	MinContentChars int
	OnProgress      ProgressCallback
}

// Processor runs documents through the pipeline. It holds no per-document
// state and is safe for concurrent use.
type Processor struct {
	cfg Config
}

// NewProcessor creates a Processor, filling unset limits with defaults.
func NewProcessor(cfg Config) (*Processor, error) {
	if cfg.Cleaner == nil || cfg.Extractor == nil || cfg.Classifier == nil {
		return nil, errors.New("pipeline: cleaner, extractor and classifier are required")
	}
	if cfg.MaxReadBytes <= 0 {
		cfg.MaxReadBytes = DefaultMaxReadBytes
	}
	if cfg.MinContentChars <= 0 {
		cfg.MinContentChars = DefaultMinContentChars
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	return &Processor{cfg: cfg}, nil
}

// ProcessFile reads at most MaxReadBytes of the document at path and
// processes it. A missing document is returned as *NotFoundError; every
// other problem becomes a failure result.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*types.ResumeResult, error) {
	requestID := uuid.New()
	p.emit(ctx, requestID, StepRead, fmt.Sprintf("Reading %s", path))

	doc, err := ingestion.ReadFile(path, p.cfg.MaxReadBytes)
	if err != nil {
		if ingestion.IsNotFound(err) {
			p.cfg.Logger.Printf("[ERROR] File not found: %s", path)
			return nil, &NotFoundError{Path: path, Cause: err}
		}
		p.cfg.Logger.Printf("[ERROR] Failed to read %s: %v", path, err)
		return types.NewFailure(err.Error()), nil
	}
	return p.processDocument(ctx, requestID, doc), nil
}

// ProcessDocument processes a document that was already read, such as an
// upload; the caller is responsible for the read cap.
func (p *Processor) ProcessDocument(ctx context.Context, doc *ingestion.Document) *types.ResumeResult {
	return p.processDocument(ctx, uuid.New(), doc)
}

func (p *Processor) processDocument(ctx context.Context, requestID uuid.UUID, doc *ingestion.Document) *types.ResumeResult {
	if doc.Metadata.Truncated {
		p.cfg.Logger.Printf("[INFO] Truncated %s to the first %d bytes of text", doc.Path, p.cfg.MaxReadBytes)
	}
	return p.run(ctx, requestID, doc.Path, doc.Metadata.Hash, doc.Text)
}

// MaxReadBytes returns the read cap applied to each document.
func (p *Processor) MaxReadBytes() int {
	return p.cfg.MaxReadBytes
}

// ProcessText processes text already in memory; the read cap is not applied.
func (p *Processor) ProcessText(ctx context.Context, raw string) *types.ResumeResult {
	sum := sha256.Sum256([]byte(raw))
	return p.run(ctx, uuid.New(), textSource, hex.EncodeToString(sum[:]), raw)
}

// run processes one document and records the outcome. Processing continues
// in the background when ctx ends first, but its result is discarded.
func (p *Processor) run(ctx context.Context, requestID uuid.UUID, source, hash, raw string) *types.ResumeResult {
	start := time.Now()
	p.cfg.Logger.Printf("[INFO] Processing %s (request %s)", source, requestID)

	done := make(chan *types.ResumeResult, 1)
	go func() {
		done <- p.process(ctx, requestID, source, raw)
	}()

	var result *types.ResumeResult
	select {
	case result = <-done:
	case <-ctx.Done():
		p.cfg.Logger.Printf("[ERROR] Processing %s abandoned: %v", source, ctx.Err())
		result = types.NewFailure(fmt.Sprintf("processing aborted: %v", ctx.Err()))
	}

	p.record(ctx, &types.PredictionRecord{
		ID:          requestID,
		Source:      source,
		ContentHash: hash,
		Result:      result,
		Duration:    time.Since(start),
		CreatedAt:   start.UTC(),
	})
	return result
}

func (p *Processor) process(ctx context.Context, requestID uuid.UUID, source, raw string) (result *types.ResumeResult) {
	defer func() {
		if r := recover(); r != nil {
			err := &PanicError{Stage: "pipeline", Value: r}
			p.cfg.Logger.Printf("[ERROR] Processing %s failed: %v", source, err)
			result = types.NewFailure(err.Error())
		}
	}()

	p.emit(ctx, requestID, StepGate, fmt.Sprintf("%d characters read", utf8.RuneCountInString(raw)))
	if utf8.RuneCountInString(raw) < p.cfg.MinContentChars {
		p.cfg.Logger.Printf("[WARN] %v: %s", ErrContentTooShort, source)
		return types.NewFailure(ErrContentTooShort.Error())
	}

	cleaned := p.cfg.Cleaner.Clean(raw)
	p.emit(ctx, requestID, StepClean, fmt.Sprintf("%d characters after cleaning", len(cleaned)))
	if cleaned == "" {
		p.cfg.Logger.Printf("[WARN] %v: %s", ErrCleaningFailed, source)
		return types.NewFailure(ErrCleaningFailed.Error())
	}

	var skills []string
	var classification *types.ClassificationResult

	var g errgroup.Group
	g.Go(func() (err error) {
		defer recoverInto(&err, StepExtract)
		skills = p.cfg.Extractor.Extract(raw)
		p.emit(ctx, requestID, StepExtract, fmt.Sprintf("%d skills found", len(skills)))
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, StepClassify)
		classification, err = p.cfg.Classifier.Classify(cleaned)
		if err != nil {
			return err
		}
		p.emit(ctx, requestID, StepClassify, fmt.Sprintf("%s (%.2f%%)", classification.Category, classification.Confidence))
		return nil
	})
	if err := g.Wait(); err != nil {
		p.cfg.Logger.Printf("[ERROR] Processing %s failed: %v", source, err)
		return types.NewFailure(err.Error())
	}

	result = types.NewSuccess(*classification, skills)
	p.emit(ctx, requestID, StepAssemble, "done")
	p.cfg.Logger.Printf("[INFO] Prediction for %s: %s (%.2f%%), %d skills",
		source, result.Category, result.Confidence, len(result.Skills))
	return result
}

func recoverInto(err *error, stage string) {
	if r := recover(); r != nil {
		*err = &PanicError{Stage: stage, Value: r}
	}
}

func (p *Processor) record(ctx context.Context, record *types.PredictionRecord) {
	if p.cfg.Recorder == nil {
		return
	}
	// the request context may already be done; history is best-effort
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.cfg.Recorder.Record(recordCtx, record); err != nil {
		p.cfg.Logger.Printf("[WARN] Failed to record prediction %s: %v", record.ID, err)
	}
}

// emit reports progress until ctx ends; a caller that stopped waiting gets
// no further events.
func (p *Processor) emit(ctx context.Context, requestID uuid.UUID, step, message string) {
	if p.cfg.OnProgress != nil && ctx.Err() == nil {
		p.cfg.OnProgress(ProgressEvent{Step: step, Message: message, RequestID: requestID.String()})
	}
}

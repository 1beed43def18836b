package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-classifier/internal/types"
)

// DefaultHistoryLimit is the number of rows Recent returns when asked for none.
const DefaultHistoryLimit = 20

// Prediction is one row of the prediction history
type Prediction struct {
	ID          uuid.UUID `json:"id"`
	Source      string    `json:"source"`
	ContentHash string    `json:"content_hash,omitempty"`
	Category    string    `json:"category,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Error       string    `json:"error,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromRecord flattens a processed document into a history row.
func FromRecord(record *types.PredictionRecord) Prediction {
	p := Prediction{
		ID:          record.ID,
		Source:      record.Source,
		ContentHash: record.ContentHash,
		DurationMS:  record.Duration.Milliseconds(),
		CreatedAt:   record.CreatedAt,
	}
	if record.Result == nil {
		return p
	}
	if record.Result.Failed() {
		p.Error = record.Result.Error
		return p
	}
	p.Category = record.Result.Category
	p.Confidence = record.Result.Confidence
	p.Skills = record.Result.Skills
	return p
}

// Result rebuilds the result record stored in the row.
func (p Prediction) Result() *types.ResumeResult {
	if p.Error != "" {
		return types.NewFailure(p.Error)
	}
	return types.NewSuccess(types.ClassificationResult{Category: p.Category, Confidence: p.Confidence}, p.Skills)
}

func encodeSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	return data, nil
}

func decodeSkills(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	return skills, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

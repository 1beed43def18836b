package types

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is one processed document as kept in the prediction history.
type PredictionRecord struct {
	ID          uuid.UUID     `json:"id"`
	Source      string        `json:"source"`                 // file path, or "-" for in-memory text
	ContentHash string        `json:"content_hash,omitempty"` // SHA256 of the bytes read
	Result      *ResumeResult `json:"result"`
	Duration    time.Duration `json:"duration_ns"`
	CreatedAt   time.Time     `json:"created_at"`
}

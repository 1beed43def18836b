// Package types provides type definitions for structured data used throughout the resume-classifier system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// unknownErrorMessage is reported when a failure carries no message of its own.
const unknownErrorMessage = "unknown error"

// ClassificationResult is the category predicted for one cleaned document.
type ClassificationResult struct {
	Category   string  `json:"category" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=100"` // percentage, 2 decimals
}

// Validate validates the ClassificationResult using the validator.
func (r *ClassificationResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ResumeResult is the terminal record produced for one résumé document.
// It is either a success (category, confidence, skills) or a failure carrying
// only an error message; there is no partial-success shape.
type ResumeResult struct {
	Category   string
	Confidence float64
	Skills     []string
	Error      string
}

// NewSuccess builds the success shape.
func NewSuccess(classification ClassificationResult, skills []string) *ResumeResult {
	if skills == nil {
		skills = []string{}
	}
	return &ResumeResult{
		Category:   classification.Category,
		Confidence: classification.Confidence,
		Skills:     skills,
	}
}

// NewFailure builds the failure shape.
func NewFailure(message string) *ResumeResult {
	if message == "" {
		message = unknownErrorMessage
	}
	return &ResumeResult{Error: message}
}

// Failed reports whether the result is the failure shape.
func (r *ResumeResult) Failed() bool {
	return r.Error != ""
}

// successJSON fixes the key order of the success shape.
type successJSON struct {
	Category   string   `json:"result_category"`
	Confidence float64  `json:"confidence"`
	Skills     []string `json:"skills"`
	Error      *string  `json:"error"`
}

type failureJSON struct {
	Error string `json:"error"`
}

// MarshalJSON emits exactly one of the two result shapes.
func (r ResumeResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(failureJSON{Error: r.Error})
	}
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(successJSON{
		Category:   r.Category,
		Confidence: r.Confidence,
		Skills:     skills,
	})
}

// UnmarshalJSON accepts either result shape.
func (r *ResumeResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Category   string   `json:"result_category"`
		Confidence float64  `json:"confidence"`
		Skills     []string `json:"skills"`
		Error      *string  `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal resume result: %w", err)
	}

	if raw.Error != nil && *raw.Error != "" {
		*r = ResumeResult{Error: *raw.Error}
		return nil
	}

	skills := raw.Skills
	if skills == nil {
		skills = []string{}
	}
	*r = ResumeResult{
		Category:   raw.Category,
		Confidence: raw.Confidence,
		Skills:     skills,
	}
	return nil
}

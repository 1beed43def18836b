package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-classifier/internal/db"
	"github.com/jonathan/resume-classifier/internal/pipeline"
	"github.com/jonathan/resume-classifier/internal/taxonomy"
	"github.com/jonathan/resume-classifier/internal/types"
)

func TestPrintPrediction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := types.NewSuccess(types.ClassificationResult{Category: "Software Engineer", Confidence: 87.25}, []string{"go", "kubernetes"})
	p.PrintPrediction(result)
	output := buf.String()

	assert.Contains(t, output, "PREDICTION")
	assert.Contains(t, output, "Software Engineer")
	assert.Contains(t, output, "87.25%")
	assert.Contains(t, output, "• kubernetes")
}

func TestPrintPrediction_Failure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPrediction(types.NewFailure("Resume content too short"))

	assert.Contains(t, buf.String(), "PREDICTION FAILED")
	assert.Contains(t, buf.String(), "Resume content too short")
}

func TestPrintPrediction_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPrediction(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	many := make([]string, 12)
	for i := range many {
		many[i] = strings.Repeat("x", i+1)
	}
	p.PrintSkills(map[taxonomy.Category][]string{
		taxonomy.Technologies: many,
		taxonomy.Tools:        {"docker"},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED SKILLS")
	assert.Contains(t, output, "docker")
	assert.Contains(t, output, "... and 4 more")
	assert.NotContains(t, output, string(taxonomy.Certifications))
}

func TestPrintSkills_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSkills(nil)

	assert.Contains(t, buf.String(), "No skills found")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ok := p.PrintValidation([]Check{
		{Name: "taxonomy", Detail: "50 technologies"},
		{Name: "model", Err: errors.New("model artifact not found")},
	})

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "CONFIGURATION INVALID")
	assert.Contains(t, buf.String(), "✓ taxonomy")
	assert.Contains(t, buf.String(), "✗ model")
}

func TestPrintValidation_AllPass(t *testing.T) {
	var buf bytes.Buffer
	ok := NewPrinter(&buf).PrintValidation([]Check{{Name: "taxonomy"}})

	assert.True(t, ok)
	assert.Contains(t, buf.String(), "CONFIGURATION VALID")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgress(pipeline.ProgressEvent{Step: pipeline.StepClassify, Message: "HR (55.00%)"})

	assert.Contains(t, buf.String(), "classify")
	assert.Contains(t, buf.String(), "HR (55.00%)")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHistory([]db.Prediction{
		{ID: uuid.New(), Source: "a.txt", Category: "HR", Confidence: 55, CreatedAt: time.Now()},
		{ID: uuid.New(), Source: "b.txt", Error: "File not found", CreatedAt: time.Now()},
	})
	output := buf.String()

	assert.Contains(t, output, "CATEGORY")
	assert.Contains(t, output, "55.00")
	assert.Contains(t, output, "error: File not found")
	assert.Contains(t, output, "b.txt")
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintHistory(nil)

	assert.Contains(t, buf.String(), "No predictions recorded")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}

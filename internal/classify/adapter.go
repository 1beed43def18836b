package classify

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-classifier/internal/types"
)

// Adapter turns cleaned text into a category and a percentage confidence.
type Adapter struct {
	model  Model
	labels *LabelEncoder
}

// NewAdapter wraps a fitted model and its label encoder.
func NewAdapter(model Model, labels *LabelEncoder) *Adapter {
	return &Adapter{model: model, labels: labels}
}

// Classify predicts the class of cleaned, takes the probability of that class
// as a percentage rounded to two decimals, and names it. Every model failure,
// including a panic, is returned as a *ClassificationError.
func (a *Adapter) Classify(cleaned string) (result *types.ClassificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ClassificationError{Message: fmt.Sprintf("classifier panicked: %v", r)}
		}
	}()

	id, err := a.model.Predict(cleaned)
	if err != nil {
		return nil, &ClassificationError{Message: "prediction failed", Cause: err}
	}

	probs, err := a.model.PredictProba(cleaned)
	if err != nil {
		return nil, &ClassificationError{Message: "probability prediction failed", Cause: err}
	}
	if id < 0 || id >= len(probs) {
		return nil, &ClassificationError{Message: fmt.Sprintf("predicted class %d has no probability (%d classes)", id, len(probs))}
	}

	category, err := a.labels.InverseTransform(id)
	if err != nil {
		return nil, &ClassificationError{Message: "unknown class", Cause: err}
	}

	result = &types.ClassificationResult{
		Category:   category,
		Confidence: RoundPercent(probs[id]),
	}
	if err := result.Validate(); err != nil {
		return nil, &ClassificationError{Message: "invalid classification", Cause: err}
	}
	return result, nil
}

// RoundPercent converts a probability to a percentage with two decimals.
func RoundPercent(p float64) float64 {
	return math.Round(p*100*100) / 100
}

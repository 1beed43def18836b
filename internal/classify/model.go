// Package classify turns cleaned résumé text into a category and a confidence
// using a trained text classification pipeline.
package classify

import "fmt"

// Model is a fitted text classifier.
type Model interface {
	Predict(text string) (int, error)
	PredictProba(text string) ([]float64, error)
}

// LabelEncoder maps class ids to category names.
type LabelEncoder struct {
	labels []string
}

// NewLabelEncoder creates an encoder whose class id i is labels[i].
func NewLabelEncoder(labels []string) *LabelEncoder {
	return &LabelEncoder{labels: append([]string(nil), labels...)}
}

// InverseTransform returns the name of class id.
func (e *LabelEncoder) InverseTransform(id int) (string, error) {
	if id < 0 || id >= len(e.labels) {
		return "", fmt.Errorf("class id %d outside [0,%d)", id, len(e.labels))
	}
	return e.labels[id], nil
}

// Labels returns a copy of the class names in id order.
func (e *LabelEncoder) Labels() []string {
	return append([]string(nil), e.labels...)
}

// Pipeline chains a Vectorizer and a LogisticRegression into a Model.
type Pipeline struct {
	Version    string
	vectorizer *Vectorizer
	model      *LogisticRegression
}

// NewPipeline builds the runtime pipeline from a checked artifact.
func NewPipeline(artifact *Artifact) *Pipeline {
	return &Pipeline{
		Version:    artifact.Version,
		vectorizer: artifact.NewVectorizer(),
		model:      artifact.NewModel(),
	}
}

// Predict returns the predicted class id.
func (p *Pipeline) Predict(text string) (int, error) {
	return p.model.Predict(p.vectorizer.Transform(text)), nil
}

// PredictProba returns the probability of every class.
func (p *Pipeline) PredictProba(text string) ([]float64, error) {
	return p.model.PredictProba(p.vectorizer.Transform(text)), nil
}

// Features returns the vectorizer's feature count.
func (p *Pipeline) Features() int {
	return p.vectorizer.Features()
}

// Load reads an artifact file and returns its pipeline and label encoder.
func Load(path string) (*Pipeline, *LabelEncoder, error) {
	artifact, err := LoadArtifact(path)
	if err != nil {
		return nil, nil, err
	}
	return NewPipeline(artifact), NewLabelEncoder(artifact.Labels), nil
}

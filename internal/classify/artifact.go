package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonathan/resume-classifier/internal/schemas"
	schemafiles "github.com/jonathan/resume-classifier/schemas"
)

// Artifact is the exported form of a trained text classification pipeline:
// a fitted TF-IDF vectorizer, a logistic regression model and the label
// encoder's classes, in class-id order.
type Artifact struct {
	Version    string             `json:"version"`
	Labels     []string           `json:"labels"`
	Vectorizer VectorizerArtifact `json:"vectorizer"`
	Model      ModelArtifact      `json:"model"`
}

// VectorizerArtifact holds the fitted vectorizer state.
type VectorizerArtifact struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramRange  []int          `json:"ngram_range,omitempty"`
	Lowercase   *bool          `json:"lowercase,omitempty"`
	StopWords   []string       `json:"stop_words,omitempty"`
	SublinearTF bool           `json:"sublinear_tf,omitempty"`
	Norm        Norm           `json:"norm,omitempty"`
}

// ModelArtifact holds the fitted linear model.
type ModelArtifact struct {
	Coef       [][]float64 `json:"coef"`
	Intercept  []float64   `json:"intercept"`
	MultiClass MultiClass  `json:"multi_class,omitempty"`
}

// LoadArtifact reads, schema-validates and checks the dimensions of an
// artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	if path == "" {
		return nil, &ConfigurationError{Path: path, Message: "model path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Path: path, Message: "model artifact not found", Cause: err}
		}
		return nil, &ConfigurationError{Path: path, Message: "failed to read model artifact", Cause: err}
	}

	return ParseArtifact(path, data)
}

// ParseArtifact decodes and validates artifact content; name labels errors.
func ParseArtifact(name string, data []byte) (*Artifact, error) {
	if !json.Valid(data) {
		return nil, &ConfigurationError{Path: name, Message: "model artifact is not valid JSON"}
	}
	if err := schemas.ValidateDocument(schemafiles.ModelArtifact, data); err != nil {
		return nil, &ConfigurationError{Path: name, Message: "model artifact does not match schema", Cause: err}
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &ConfigurationError{Path: name, Message: "failed to decode model artifact", Cause: err}
	}
	if err := artifact.check(); err != nil {
		return nil, &ConfigurationError{Path: name, Message: "inconsistent model artifact", Cause: err}
	}
	return &artifact, nil
}

// check verifies that the vectorizer, model and labels agree on dimensions.
func (a *Artifact) check() error {
	features := len(a.Vectorizer.IDF)
	if features == 0 {
		return errors.New("vectorizer has no features")
	}
	if len(a.Vectorizer.Vocabulary) != features {
		return fmt.Errorf("vocabulary has %d terms but idf has %d weights", len(a.Vectorizer.Vocabulary), features)
	}
	seen := make([]bool, features)
	for term, idx := range a.Vectorizer.Vocabulary {
		if idx < 0 || idx >= features {
			return fmt.Errorf("vocabulary term %q has index %d outside [0,%d)", term, idx, features)
		}
		if seen[idx] {
			return fmt.Errorf("vocabulary index %d is used twice", idx)
		}
		seen[idx] = true
	}

	if r := a.Vectorizer.NgramRange; len(r) == 2 && r[0] > r[1] {
		return fmt.Errorf("ngram_range [%d,%d] is empty", r[0], r[1])
	}

	rows := len(a.Model.Coef)
	switch {
	case rows == 1 && len(a.Labels) != 2:
		return fmt.Errorf("binary model needs 2 labels, got %d", len(a.Labels))
	case rows > 1 && rows != len(a.Labels):
		return fmt.Errorf("model has %d coefficient rows for %d labels", rows, len(a.Labels))
	}
	if len(a.Model.Intercept) != rows {
		return fmt.Errorf("model has %d coefficient rows but %d intercepts", rows, len(a.Model.Intercept))
	}
	for k, row := range a.Model.Coef {
		if len(row) != features {
			return fmt.Errorf("coefficient row %d has %d weights for %d features", k, len(row), features)
		}
	}
	return nil
}

// NewVectorizer builds the runtime vectorizer. Unset options take the
// defaults of the fitting library: unigrams, lowercasing, raw tf, l2 norm.
func (a *Artifact) NewVectorizer() *Vectorizer {
	v := &Vectorizer{
		vocabulary:  a.Vectorizer.Vocabulary,
		idf:         a.Vectorizer.IDF,
		minN:        1,
		maxN:        1,
		lowercase:   true,
		sublinearTF: a.Vectorizer.SublinearTF,
		norm:        a.Vectorizer.Norm,
	}
	if r := a.Vectorizer.NgramRange; len(r) == 2 {
		v.minN, v.maxN = r[0], r[1]
	}
	if a.Vectorizer.Lowercase != nil {
		v.lowercase = *a.Vectorizer.Lowercase
	}
	if len(a.Vectorizer.StopWords) > 0 {
		v.stopwords = make(map[string]struct{}, len(a.Vectorizer.StopWords))
		for _, w := range a.Vectorizer.StopWords {
			v.stopwords[w] = struct{}{}
		}
	}
	return v
}

// NewModel builds the runtime linear model.
func (a *Artifact) NewModel() *LogisticRegression {
	multiClass := a.Model.MultiClass
	if multiClass == "" {
		multiClass = Multinomial
	}
	return &LogisticRegression{
		coef:       a.Model.Coef,
		intercept:  a.Model.Intercept,
		multiClass: multiClass,
	}
}

package taxonomy

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-classifier/internal/schemas"
	schemafiles "github.com/jonathan/resume-classifier/schemas"
)

// source is the on-disk shape of the taxonomy document.
type source struct {
	Technologies   []string `json:"technologies" yaml:"technologies"`
	Tools          []string `json:"tools" yaml:"tools"`
	Certifications []string `json:"certifications" yaml:"certifications"`
}

// Load reads a taxonomy document. Files ending in .yaml or .yml are parsed
// as YAML, everything else as JSON. Both forms are validated against the
// taxonomy schema before use.
func Load(path string) (*Set, error) {
	if path == "" {
		return nil, &ConfigurationError{Path: path, Message: "taxonomy path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Path: path, Message: "taxonomy file not found", Cause: err}
		}
		return nil, &ConfigurationError{Path: path, Message: "failed to read taxonomy file", Cause: err}
	}

	return Parse(path, data)
}

// Parse decodes and validates taxonomy content. The name is used to pick the
// format and to label errors.
func Parse(name string, data []byte) (*Set, error) {
	document, err := toJSON(name, data)
	if err != nil {
		return nil, &ConfigurationError{Path: name, Message: "failed to parse taxonomy", Cause: err}
	}

	if err := schemas.ValidateDocument(schemafiles.Taxonomy, document); err != nil {
		return nil, &ConfigurationError{Path: name, Message: "taxonomy does not match schema", Cause: err}
	}

	var src source
	if err := json.Unmarshal(document, &src); err != nil {
		return nil, &ConfigurationError{Path: name, Message: "failed to decode taxonomy", Cause: err}
	}

	return New(src.Technologies, src.Tools, src.Certifications), nil
}

// LoadOrEmpty loads the taxonomy and falls back to an empty Set on failure,
// so a broken taxonomy degrades skill recall to zero instead of stopping the
// process.
func LoadOrEmpty(path string, logger *log.Logger) *Set {
	set, err := Load(path)
	if err != nil {
		logger.Printf("[ERROR] Error loading skills: %v", err)
		return Empty()
	}
	logger.Printf("[INFO] Skills data loaded successfully (%d terms).", set.Len())
	return set
}

// toJSON normalizes YAML input to JSON so that one schema covers both forms.
func toJSON(name string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" {
		if !json.Valid(data) {
			return nil, errors.New("invalid JSON")
		}
		return data, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

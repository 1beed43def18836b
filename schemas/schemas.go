// Package schemas holds the JSON Schema documents for the taxonomy source,
// the classifier artifact and the result record.
package schemas

import "embed"

// Schema file names.
const (
	Taxonomy      = "taxonomy.schema.json"
	ModelArtifact = "model_artifact.schema.json"
	ResumeResult  = "resume_result.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

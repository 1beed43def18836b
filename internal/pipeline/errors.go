package pipeline

import (
	"errors"
	"fmt"
)

// Gate outcomes. Their messages are reported verbatim in the result's error
// field.
var (
	ErrContentTooShort = errors.New("Resume content too short")    //nolint:staticcheck // reported verbatim
	ErrCleaningFailed  = errors.New("Failed to clean resume text") //nolint:staticcheck // reported verbatim
)

// NotFoundMessage is reported when the input document does not exist.
const NotFoundMessage = "File not found"

// NotFoundError is returned when the input document does not exist. It is the
// only per-document error ProcessFile returns instead of a failure result.
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", NotFoundMessage, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// PanicError wraps a panic recovered while processing a document.
type PanicError struct {
	Stage string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Stage, e.Value)
}

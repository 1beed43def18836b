package classify

import "fmt"

// ConfigurationError represents a missing or inconsistent classifier artifact.
type ConfigurationError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classifier configuration error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("classifier configuration error (%s): %s", e.Path, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ClassificationError represents a failure of the underlying model while
// classifying one document.
type ClassificationError struct {
	Message string
	Cause   error
}

func (e *ClassificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClassificationError) Unwrap() error {
	return e.Cause
}

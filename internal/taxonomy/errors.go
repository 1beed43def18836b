package taxonomy

import "fmt"

// ConfigurationError represents a missing or malformed taxonomy source.
type ConfigurationError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy configuration error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy configuration error (%s): %s", e.Path, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

package skills

import "fmt"

// MatcherError represents a failure to build a term matcher
type MatcherError struct {
	Message string
	Cause   error
}

func (e *MatcherError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill matcher error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("skill matcher error: %s", e.Message)
}

func (e *MatcherError) Unwrap() error {
	return e.Cause
}

package core

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse indicates the LLM returned output that does not satisfy
// the classification schema (unknown label, out-of-range confidence, missing
// reason, or unparseable JSON). It is retryable within the classifier budget.
var ErrInvalidResponse = errors.New("llm response does not match classification schema")

// ErrNoLeadData indicates an event carried no recoverable lead fields
var ErrNoLeadData = errors.New("no usable lead fields in event")

// ClassifierError represents a failed classification: the model was
// unreachable or the retry budget was exhausted without a schema-valid
// response. Callers must treat it as "classification failed" and never
// substitute a fallback label.
type ClassifierError struct {
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *ClassifierError) Error() string {
	return fmt.Sprintf("classification failed after %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying cause
func (e *ClassifierError) Unwrap() error {
	return e.Err
}

package questions

import (
	"fmt"

	"github.com/abhisek/masteryloop/internal/checkpoint"
)

// Validator checks a generated question batch.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "coverage".
	Name() string

	// Validate checks the batch generated for conceptIDs and returns nil if
	// it passes. A single bad question fails the whole batch.
	Validate(batch []checkpoint.Question, conceptIDs []string) *ValidationError
}

// ValidationError describes why a batch failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

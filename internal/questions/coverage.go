package questions

import (
	"fmt"

	"github.com/abhisek/masteryloop/internal/checkpoint"
)

// CoverageValidator checks that the batch has one question per requested
// concept, in request order.
type CoverageValidator struct{}

func (v *CoverageValidator) Name() string { return "coverage" }

func (v *CoverageValidator) Validate(batch []checkpoint.Question, conceptIDs []string) *ValidationError {
	if len(batch) != len(conceptIDs) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", len(conceptIDs), len(batch)),
			Retryable: true,
		}
	}
	for i, q := range batch {
		if q.ConceptID != conceptIDs[i] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d is for concept %q, want %q", i, q.ConceptID, conceptIDs[i]),
				Retryable: true,
			}
		}
	}
	return nil
}

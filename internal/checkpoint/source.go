package checkpoint

import (
	"context"
	"errors"
	"fmt"
)

// QuestionSource produces exactly one question per concept, in the same
// order as the concept IDs it was given. A source either returns a full set
// or an error; partial sets are a contract violation.
type QuestionSource interface {
	Generate(ctx context.Context, conceptIDs []string) ([]Question, error)
}

// SourceFunc adapts a function to QuestionSource.
type SourceFunc func(ctx context.Context, conceptIDs []string) ([]Question, error)

// Generate calls f.
func (f SourceFunc) Generate(ctx context.Context, conceptIDs []string) ([]Question, error) {
	return f(ctx, conceptIDs)
}

// errContract is wrapped by every contract violation found in a generated set.
var errContract = errors.New("contract violation")

// verifyQuestions checks a generated set against the source contract.
func verifyQuestions(conceptIDs []string, qs []Question) error {
	if len(qs) != len(conceptIDs) {
		return fmt.Errorf("%w: got %d questions for %d concepts", errContract, len(qs), len(conceptIDs))
	}
	for i, q := range qs {
		if q.ConceptID != conceptIDs[i] {
			return fmt.Errorf("%w: question %d tests %q, want %q", errContract, i, q.ConceptID, conceptIDs[i])
		}
		if !q.Valid() {
			return fmt.Errorf("%w: question %d for %q has %d options and correct index %d",
				errContract, i, q.ConceptID, len(q.Options), q.CorrectIndex)
		}
	}
	return nil
}

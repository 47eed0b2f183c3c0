package checkpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for an empty or duplicate concept list and
	// for an option index outside the current question's options.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionComplete is returned when an answer is submitted to a
	// session that has already been passed.
	ErrSessionComplete = errors.New("session complete")

	// ErrQuestionSource matches every *SourceError via errors.Is.
	ErrQuestionSource = errors.New("question source failure")
)

// SourceError reports that the question source failed or returned a set
// that breaks its contract. No session is created when it is returned.
type SourceError struct {
	CheckpointID string
	Err          error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("checkpoint %s: question source: %v", e.CheckpointID, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrQuestionSource) hold for any SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrQuestionSource
}

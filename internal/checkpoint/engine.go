// Package checkpoint implements the adaptive checkpoint quiz engine.
//
// A checkpoint session asks one question per concept. Every round that ends
// with misses starts a new adaptive round over exactly the missed questions,
// until a round is answered without a miss. The engine performs no I/O
// beyond the question source call in StartSession.
package checkpoint

import (
	"context"
	"fmt"
	"slices"
)

// StartSession generates a question per concept and returns a fresh session
// in round 1. It blocks only inside source.Generate.
func StartSession(ctx context.Context, checkpointID string, conceptIDs []string, source QuestionSource) (*Session, error) {
	if len(conceptIDs) == 0 {
		return nil, fmt.Errorf("%w: no concepts for checkpoint %q", ErrInvalidInput, checkpointID)
	}
	seen := make(map[string]bool, len(conceptIDs))
	for _, id := range conceptIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate concept %q in checkpoint %q", ErrInvalidInput, id, checkpointID)
		}
		seen[id] = true
	}
	if source == nil {
		return nil, &SourceError{CheckpointID: checkpointID, Err: fmt.Errorf("no question source configured")}
	}

	ids := slices.Clone(conceptIDs)
	qs, err := source.Generate(ctx, ids)
	if err != nil {
		return nil, &SourceError{CheckpointID: checkpointID, Err: err}
	}
	if err := verifyQuestions(conceptIDs, qs); err != nil {
		return nil, &SourceError{CheckpointID: checkpointID, Err: err}
	}

	original := cloneQuestions(qs)
	return &Session{
		checkpointID: checkpointID,
		original:     original,
		active:       original,
		round:        1,
	}, nil
}

// Outcome describes what a single SubmitAnswer did.
type Outcome struct {
	// Question is the question that was answered.
	Question Question

	// OptionIndex is the submitted option.
	OptionIndex int

	// Correct reports whether OptionIndex was the right answer.
	Correct bool

	// Round is the round the answer belonged to.
	Round int

	// Adaptive reports whether the answer was given in an adaptive round.
	Adaptive bool

	// RoundEnded is true when this answer was the last of its round.
	RoundEnded bool

	// Retry is true when the round ended with misses and a new adaptive
	// round has started.
	Retry bool

	// Completed is true when the round ended with no misses.
	Completed bool

	// MissedConceptIDs lists the concepts missed in the round that just
	// ended. Empty unless Retry is set.
	MissedConceptIDs []string
}

// SubmitAnswer records an answer to the current question and advances the
// session. A rejected call leaves the session unchanged. SubmitAnswer never
// blocks.
func SubmitAnswer(s *Session, optionIndex int) (Outcome, error) {
	if s == nil {
		return Outcome{}, fmt.Errorf("%w: nil session", ErrInvalidInput)
	}
	if s.complete {
		return Outcome{}, ErrSessionComplete
	}
	if s.current >= len(s.active) {
		return Outcome{}, fmt.Errorf("%w: no question awaiting an answer", ErrInvalidInput)
	}
	q := s.active[s.current]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return Outcome{}, fmt.Errorf("%w: option %d out of range [0,%d)", ErrInvalidInput, optionIndex, len(q.Options))
	}

	out := Outcome{
		Question:    q.clone(),
		OptionIndex: optionIndex,
		Correct:     q.IsCorrect(optionIndex),
		Round:       s.round,
		Adaptive:    s.adaptive,
	}
	if !out.Correct {
		s.missed = append(s.missed, s.current)
	}
	s.current++

	if s.current < len(s.active) {
		return out, nil
	}

	out.RoundEnded = true
	if len(s.missed) == 0 {
		s.complete = true
		out.Completed = true
		return out, nil
	}

	out.Retry = true
	out.MissedConceptIDs = s.MissedConceptIDs()
	next := make([]Question, 0, len(s.missed))
	for _, i := range s.missed {
		next = append(next, s.active[i])
	}
	s.active = next
	s.current = 0
	s.missed = nil
	s.adaptive = true
	s.round++
	return out, nil
}

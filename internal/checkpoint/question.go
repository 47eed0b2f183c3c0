package checkpoint

import "slices"

// Question is a single multiple-choice item produced by a QuestionSource.
type Question struct {
	// ConceptID identifies the concept this question tests. It stays the
	// same across rounds.
	ConceptID string

	// Prompt is the question text shown to the learner.
	Prompt string

	// Options are the ordered answer choices.
	Options []string

	// CorrectIndex is the index into Options of the right answer.
	CorrectIndex int

	// Explanation is an optional rationale shown after answering.
	Explanation string
}

// Valid reports whether the question has at least one option and a
// CorrectIndex inside Options.
func (q Question) Valid() bool {
	return len(q.Options) > 0 && q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// IsCorrect reports whether optionIndex is the right answer.
func (q Question) IsCorrect(optionIndex int) bool {
	return optionIndex == q.CorrectIndex
}

func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

func cloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.clone()
	}
	return out
}

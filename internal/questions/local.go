package questions

import (
	"context"
	"fmt"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
)

// LocalSource builds questions offline. A concept with a curated quiz
// gets its first curated question; any other concept gets a fixed
// template question built from its title.
type LocalSource struct {
	concepts ConceptLookup
}

// NewLocalSource creates a LocalSource over the given concepts.
func NewLocalSource(concepts ConceptLookup) *LocalSource {
	return &LocalSource{concepts: concepts}
}

// Generate never partially succeeds: one unknown concept fails the call.
func (s *LocalSource) Generate(ctx context.Context, conceptIDs []string) ([]checkpoint.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]checkpoint.Question, len(conceptIDs))
	for i, id := range conceptIDs {
		c, err := s.concepts.Concept(id)
		if err != nil {
			return nil, fmt.Errorf("local question for %q: %w", id, err)
		}
		out[i] = LocalQuestion(c)
	}
	return out, nil
}

// LocalQuestion returns the offline question for a concept.
func LocalQuestion(c curriculum.Concept) checkpoint.Question {
	if len(c.Quiz) > 0 {
		return c.Quiz[0].CheckpointQuestion(c.ID)
	}
	return TemplateQuestion(c.ID, c.Title)
}

// TemplateQuestion is the generic review question used when a concept has
// no curated quiz. The second option is always correct.
func TemplateQuestion(conceptID, title string) checkpoint.Question {
	return checkpoint.Question{
		ConceptID: conceptID,
		Prompt:    fmt.Sprintf("What is the core purpose of %s?", title),
		Options: []string{
			fmt.Sprintf("To optimize %s latency unnecessarily.", title),
			fmt.Sprintf("Fundamental concept for %s stability and structure.", title),
			"It has no real impact on the system.",
			"To delete user data securely.",
		},
		CorrectIndex: 1,
		Explanation:  fmt.Sprintf("Review %s: It is critical for system stability.", title),
	}
}

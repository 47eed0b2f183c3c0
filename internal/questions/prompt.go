package questions

import (
	"fmt"
	"strings"

	"github.com/abhisek/masteryloop/internal/curriculum"
)

const systemPrompt = `You are a tutor writing a review checkpoint for a student who has just studied a group of concepts.

Rules:
- Write exactly one multiple-choice question per concept, in the same order as the concepts are listed.
- Copy each concept_id exactly as given.
- Each question tests understanding of the concept, not trivia or wording.
- Provide exactly 4 distinct options where exactly one is correct. Distractors should reflect common misconceptions.
- Vary the position of the correct option.
- The explanation says in one or two sentences why the correct option is right.
- Match the difficulty label of each concept.`

// buildUserMessage lists the concepts to cover with their curriculum
// metadata.
func buildUserMessage(concepts []curriculum.Concept) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write %d questions, one for each concept below.\n", len(concepts))
	for i, c := range concepts {
		fmt.Fprintf(&b, "\n%d. concept_id: %s\n", i+1, c.ID)
		fmt.Fprintf(&b, "   Title: %s\n", c.Title)
		fmt.Fprintf(&b, "   Difficulty: %s\n", c.Difficulty)
		if c.Explanation != "" {
			fmt.Fprintf(&b, "   Summary: %s\n", strings.TrimSpace(c.Explanation))
		}
	}
	return b.String()
}

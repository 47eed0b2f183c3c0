package cards

import (
	"fmt"
	"strings"

	"github.com/abhisek/masteryloop/internal/curriculum"
)

const systemPrompt = `You are an expert tutor writing a learning card for a university student.

Rules:
- Explain the concept plainly; no jargon without a definition.
- The visual prompt describes a concrete scene, not an abstract diagram.
- Examples are everyday analogies that map onto the mechanism.
- Sub-concepts are the key terms a student must know, each defined in one sentence.
- Quiz questions have exactly 4 distinct options with one correct answer.
- Pitch everything at the given difficulty.`

func buildUserMessage(c curriculum.Concept) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain: %s\n", c.Title)
	fmt.Fprintf(&b, "Difficulty: %s\n", c.Difficulty)
	if c.Explanation != "" {
		fmt.Fprintf(&b, "\nSyllabus notes:\n%s\n", strings.TrimSpace(c.Explanation))
	}
	if c.Simplified != "" {
		fmt.Fprintf(&b, "\nPlain-language version:\n%s\n", strings.TrimSpace(c.Simplified))
	}
	return b.String()
}

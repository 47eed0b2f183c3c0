package cards

import (
	"fmt"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
)

// LocalCard builds the offline template card for a concept.
func LocalCard(c curriculum.Concept) *Card {
	topic := c.Title
	definition := fmt.Sprintf("%s is a fundamental concept in this domain. It involves the systematic application of rules to achieve a specific outcome, often serving as a building block for more complex systems.", topic)
	visual := fmt.Sprintf("Imagine a complex network where %s acts as the central hub, connecting various nodes and ensuring smooth data flow like a traffic controller.", topic)

	return &Card{
		ConceptID:    c.ID,
		Title:        c.Title,
		Difficulty:   c.Difficulty,
		Definition:   definition,
		VisualPrompt: visual,
		Examples: []curriculum.Example{{
			Title:       "Real World Analogy",
			Explanation: fmt.Sprintf("Think of %s like a library indexing system. Just as an index helps you find books efficiently without searching every shelf, %s organizes information for rapid retrieval.", topic, topic),
		}},
		SubConcepts: []curriculum.SubConcept{
			{Title: "Core Mechanism", Definition: "The underlying process that drives the behavior."},
			{Title: "Efficiency", Definition: "Optimizes performance by reducing redundant operations."},
			{Title: "Scalability", Definition: "Allows the system to handle output growth gracefully."},
		},
		Quiz: []checkpoint.Question{{
			ConceptID: c.ID,
			Prompt:    fmt.Sprintf("What is the primary function of %s?", topic),
			Options: []string{
				"To increase system complexity unnecessarily",
				"To optimize process efficiency and structure",
				"To delete data randomly",
				"To slow down network traffic",
			},
			CorrectIndex: 1,
			Explanation:  fmt.Sprintf("%s is designed effectively to improve structure and efficiency.", topic),
		}},
		Origin: OriginLocal,
	}
}

// CuratedCard builds a card from hand-written content. ok is false when
// the concept has none.
func CuratedCard(c curriculum.Concept) (card *Card, ok bool) {
	if !c.HasCuratedCard() {
		return nil, false
	}
	quiz := make([]checkpoint.Question, len(c.Quiz))
	for i, item := range c.Quiz {
		quiz[i] = item.CheckpointQuestion(c.ID)
	}
	return &Card{
		ConceptID:    c.ID,
		Title:        c.Title,
		Difficulty:   c.Difficulty,
		Definition:   c.Card.Definition,
		VisualPrompt: c.Card.VisualPrompt,
		Examples:     c.Card.Examples,
		SubConcepts:  c.Card.SubConcepts,
		Quiz:         quiz,
		Origin:       OriginCurated,
	}, true
}

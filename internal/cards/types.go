package cards

import (
	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
)

// Origin records where a card's content came from.
type Origin string

const (
	OriginCurated Origin = "curated"
	OriginAI      Origin = "ai"
	OriginLocal   Origin = "local"
)

// Card is the learning material shown for one concept.
type Card struct {
	ConceptID    string
	Title        string
	Difficulty   curriculum.Difficulty
	Definition   string
	VisualPrompt string
	Examples     []curriculum.Example
	SubConcepts  []curriculum.SubConcept
	Quiz         []checkpoint.Question

	// Origin is the source that produced the card; Provider names the LLM
	// provider when Origin is OriginAI.
	Origin   Origin
	Provider string
}

package curriculum

import "github.com/abhisek/masteryloop/internal/checkpoint"

// Difficulty is the authored difficulty of a concept.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Subject is a top-level course, e.g. Operating Systems.
type Subject struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Modules     []Module `yaml:"modules"`
}

// Module groups related concepts inside a subject.
type Module struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Concepts    []Concept `yaml:"concepts"`
}

// Concept is a single learnable unit; it is what a learning card and a
// checkpoint question are about.
type Concept struct {
	ID            string       `yaml:"id"`
	Title         string       `yaml:"title"`
	Difficulty    Difficulty   `yaml:"difficulty"`
	EstimatedMins int          `yaml:"estimated_mins"`
	Prerequisites []string     `yaml:"prerequisites"`
	Explanation   string       `yaml:"explanation"`
	Simplified    string       `yaml:"simplified"`
	Card          *CardContent `yaml:"card"`
	Quiz          []QuizItem   `yaml:"quiz"`

	// Filled in by the catalog.
	SubjectID string `yaml:"-"`
	ModuleID  string `yaml:"-"`
}

// CardContent is hand-written learning card material.
type CardContent struct {
	Definition   string       `yaml:"definition"`
	VisualPrompt string       `yaml:"visual_prompt"`
	Examples     []Example    `yaml:"examples"`
	SubConcepts  []SubConcept `yaml:"sub_concepts"`
}

// Example is a worked analogy on a card.
type Example struct {
	Title       string `yaml:"title"`
	Explanation string `yaml:"explanation"`
}

// SubConcept is a short glossary entry on a card.
type SubConcept struct {
	Title      string `yaml:"title"`
	Definition string `yaml:"definition"`
}

// QuizItem is a curated multiple-choice question.
type QuizItem struct {
	Question    string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// CheckpointQuestion converts the item into a checkpoint question for conceptID.
func (q QuizItem) CheckpointQuestion(conceptID string) checkpoint.Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return checkpoint.Question{
		ConceptID:    conceptID,
		Prompt:       q.Question,
		Options:      opts,
		CorrectIndex: q.Answer,
		Explanation:  q.Explanation,
	}
}

// HasCuratedCard reports whether the concept ships with card content.
func (c *Concept) HasCuratedCard() bool {
	return c.Card != nil && c.Card.Definition != ""
}

// State represents a concept's state relative to the learner.
type State int

const (
	StateLocked    State = iota // One or more prerequisites not yet mastered
	StateAvailable              // All prerequisites mastered; not yet mastered itself
	StateMastered               // Covered by a passed checkpoint
)

// Icon returns the display icon for a concept state.
func (s State) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🔓"
	case StateMastered:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a concept state.
func (s State) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateMastered:
		return "Mastered"
	default:
		return "Unknown"
	}
}

package questions

import (
	"context"
	"fmt"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
)

type fakeConcepts map[string]curriculum.Concept

func (f fakeConcepts) Concept(id string) (curriculum.Concept, error) {
	c, ok := f[id]
	if !ok {
		return curriculum.Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return c, nil
}

func testConcepts() fakeConcepts {
	return fakeConcepts{
		"fcfs": {
			ID: "fcfs", Title: "FCFS Scheduling", Difficulty: curriculum.DifficultyMedium,
			Explanation: "Processes run in arrival order.",
			Quiz: []curriculum.QuizItem{{
				Question: "FCFS suffers from which major issue?",
				Options:  []string{"Starvation", "Deadlock", "Convoy Effect", "Complexity"},
				Answer:   2,
			}},
		},
		"rr":     {ID: "rr", Title: "Round Robin", Difficulty: curriculum.DifficultyHard},
		"paging": {ID: "paging", Title: "Paging", Difficulty: curriculum.DifficultyMedium},
	}
}

func question(conceptID string) map[string]any {
	return map[string]any{
		"concept_id":    conceptID,
		"prompt":        "Which statement about " + conceptID + " is true?",
		"options":       []string{"one", "two", "three", "four"},
		"correct_index": 2,
		"explanation":   "Because three.",
	}
}

func batchJSON(conceptIDs ...string) map[string]any {
	qs := make([]map[string]any, len(conceptIDs))
	for i, id := range conceptIDs {
		qs[i] = question(id)
	}
	return map[string]any{"questions": qs}
}

// stubSource returns fixed questions or a fixed error and counts calls.
type stubSource struct {
	qs    []checkpoint.Question
	err   error
	calls int
}

func (s *stubSource) Generate(_ context.Context, _ []string) ([]checkpoint.Question, error) {
	s.calls++
	return s.qs, s.err
}

package cards

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/llm"
)

func plainConcept() curriculum.Concept {
	return curriculum.Concept{
		ID:          "concept-2-2",
		Title:       "Paging",
		Difficulty:  curriculum.DifficultyMedium,
		Explanation: "Memory is split into fixed-size pages.",
		Simplified:  "Like numbered lockers.",
	}
}

func curatedConcept() curriculum.Concept {
	return curriculum.Concept{
		ID:         "concept-1-1",
		Title:      "Kernel vs User Mode",
		Difficulty: curriculum.DifficultyEasy,
		Card: &curriculum.CardContent{
			Definition:   "The separation of privilege levels for system stability.",
			VisualPrompt: "A kitchen and a dining area.",
			Examples:     []curriculum.Example{{Title: "The Restaurant", Explanation: "Ask a waiter."}},
		},
		Quiz: []curriculum.QuizItem{{
			Question: "Which mode has direct hardware access?",
			Options:  []string{"User Mode", "Kernel Mode", "Guest Mode", "Safe Mode"},
			Answer:   1,
		}},
	}
}

func cardJSON() llm.MockResponse {
	return llm.MockJSON(map[string]any{
		"definition":    "Paging maps virtual pages onto physical frames.",
		"visual_prompt": "A wall of numbered lockers.",
		"examples":      []map[string]string{{"title": "Lockers", "explanation": "Each page fits one locker."}},
		"sub_concepts":  []map[string]string{{"title": "Page table", "definition": "Maps pages to frames."}},
		"quiz": []map[string]any{{
			"question":      "What does a page table map?",
			"options":       []string{"Pages to frames", "Files to disks", "Users to groups", "Ports to sockets"},
			"correct_index": 0,
			"explanation":   "It translates virtual page numbers.",
		}},
	})
}

func TestService_CuratedFirst(t *testing.T) {
	mock := llm.NewMockProvider(cardJSON())
	svc := NewService([]llm.Named{{Name: "mock", Provider: mock}}, DefaultConfig(), nil)

	card := svc.Generate(context.Background(), curatedConcept())
	assert.Equal(t, OriginCurated, card.Origin)
	assert.Equal(t, "The separation of privilege levels for system stability.", card.Definition)
	require.Len(t, card.Quiz, 1)
	assert.Equal(t, "concept-1-1", card.Quiz[0].ConceptID)
	assert.Equal(t, 1, card.Quiz[0].CorrectIndex)
	assert.Zero(t, mock.CallCount())
}

func TestService_CuratedSkippedWhenNotPreferred(t *testing.T) {
	mock := llm.NewMockProvider(cardJSON())
	cfg := DefaultConfig()
	cfg.PreferCurated = false
	svc := NewService([]llm.Named{{Name: "mock", Provider: mock}}, cfg, nil)

	card := svc.Generate(context.Background(), curatedConcept())
	assert.Equal(t, OriginAI, card.Origin)
	assert.Equal(t, 1, mock.CallCount())
}

func TestService_LLMCard(t *testing.T) {
	mock := llm.NewMockProvider(cardJSON())
	svc := NewService([]llm.Named{{Name: "openai", Provider: mock}}, DefaultConfig(), nil)

	card := svc.Generate(context.Background(), plainConcept())
	assert.Equal(t, OriginAI, card.Origin)
	assert.Equal(t, "openai", card.Provider)
	assert.Equal(t, "Paging maps virtual pages onto physical frames.", card.Definition)
	assert.Equal(t, "Lockers", card.Examples[0].Title)
	assert.Equal(t, "Maps pages to frames.", card.SubConcepts[0].Definition)
	require.Len(t, card.Quiz, 1)
	assert.Equal(t, "concept-2-2", card.Quiz[0].ConceptID)

	assert.Equal(t, []string{llm.PurposeLearningCard}, mock.Purposes)
	req := mock.Calls[0]
	assert.Same(t, CardSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Explain: Paging")
	assert.Contains(t, req.Messages[0].Content, "Like numbered lockers.")
}

func TestService_FallsBackThroughProviders(t *testing.T) {
	bad := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	good := llm.NewMockProvider(cardJSON())
	svc := NewService([]llm.Named{{Name: "primary", Provider: bad}, {Name: "alternate", Provider: good}}, DefaultConfig(), nil)

	card := svc.Generate(context.Background(), plainConcept())
	assert.Equal(t, OriginAI, card.Origin)
	assert.Equal(t, "alternate", card.Provider)
}

func TestService_LocalTemplate(t *testing.T) {
	invalid := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"definition": "ok", "visual_prompt": "", "examples": []any{}, "sub_concepts": []any{},
		"quiz": []map[string]any{{"question": "q", "options": []string{"a", "b"}, "correct_index": 0, "explanation": ""}},
	}))
	svc := NewService([]llm.Named{{Name: "mock", Provider: invalid}}, DefaultConfig(), nil)

	card := svc.Generate(context.Background(), plainConcept())
	assert.Equal(t, OriginLocal, card.Origin)
	assert.Contains(t, card.Definition, "Paging is a fundamental concept")
	require.Len(t, card.Quiz, 1)
	assert.Equal(t, "What is the primary function of Paging?", card.Quiz[0].Prompt)
	assert.Equal(t, 1, card.Quiz[0].CorrectIndex)
	assert.Len(t, card.SubConcepts, 3)
}

func TestService_NoProviders(t *testing.T) {
	svc := NewService(nil, DefaultConfig(), nil)
	card := svc.Generate(context.Background(), plainConcept())
	assert.Equal(t, OriginLocal, card.Origin)
}

func TestService_Caches(t *testing.T) {
	mock := llm.NewMockProvider(cardJSON())
	svc := NewService([]llm.Named{{Name: "mock", Provider: mock}}, DefaultConfig(), nil)

	_, ok := svc.Cached("concept-2-2")
	assert.False(t, ok)

	first := svc.Generate(context.Background(), plainConcept())
	second := svc.Generate(context.Background(), plainConcept())
	assert.Same(t, first, second)
	assert.Equal(t, 1, mock.CallCount())

	cached, ok := svc.Cached("concept-2-2")
	assert.True(t, ok)
	assert.Same(t, first, cached)
}

func TestService_ConcurrentGenerateKeepsOneCard(t *testing.T) {
	svc := NewService(nil, DefaultConfig(), nil)

	var wg sync.WaitGroup
	got := make([]*Card, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = svc.Generate(context.Background(), plainConcept())
		}(i)
	}
	wg.Wait()

	for _, c := range got[1:] {
		assert.Same(t, got[0], c)
	}
}

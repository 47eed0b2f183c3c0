package llm

import (
	"context"
	"sync"

	"github.com/abhisek/masteryloop/internal/store"
)

// recordingRepo captures LLM request events.
type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func quizSchema() *Schema {
	return &Schema{
		Name:        "test-quiz",
		Description: "A quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt":        map[string]any{"type": "string"},
				"correct_index": map[string]any{"type": "integer", "minimum": 0},
				"difficulty":    map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
			},
			"required":             []any{"prompt", "correct_index"},
			"additionalProperties": false,
		},
	}
}

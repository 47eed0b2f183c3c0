package questions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/llm"
)

// ConceptLookup resolves concept metadata by ID.
type ConceptLookup interface {
	Concept(id string) (curriculum.Concept, error)
}

// LLMSource generates a checkpoint batch with one structured LLM request.
type LLMSource struct {
	provider llm.Provider
	concepts ConceptLookup
	config   Config
}

// NewLLMSource creates an LLMSource. A config without validators gets the
// default chain.
func NewLLMSource(provider llm.Provider, concepts ConceptLookup, cfg Config) *LLMSource {
	if len(cfg.Validators) == 0 {
		cfg.Validators = DefaultValidators()
	}
	return &LLMSource{provider: provider, concepts: concepts, config: cfg}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []struct {
		ConceptID    string   `json:"concept_id"`
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		Explanation  string   `json:"explanation"`
	} `json:"questions"`
}

// Generate produces one question per concept ID, in order.
func (s *LLMSource) Generate(ctx context.Context, conceptIDs []string) ([]checkpoint.Question, error) {
	concepts := make([]curriculum.Concept, len(conceptIDs))
	for i, id := range conceptIDs {
		c, err := s.concepts.Concept(id)
		if err != nil {
			return nil, err
		}
		concepts[i] = c
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCheckpointQuestions)

	req := llm.SingleTurn(systemPrompt, buildUserMessage(concepts), BatchSchema).
		WithLimits(s.config.MaxTokens, s.config.Temperature)

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	batch := make([]checkpoint.Question, len(raw.Questions))
	for i, q := range raw.Questions {
		batch[i] = checkpoint.Question{
			ConceptID:    q.ConceptID,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}

	// Run validators in order.
	for _, v := range s.config.Validators {
		if verr := v.Validate(batch, conceptIDs); verr != nil {
			return nil, verr
		}
	}

	return batch, nil
}

// Package cards produces learning cards: curated content when the
// curriculum has it, LLM-generated content otherwise, and a local
// template when no provider answers.
package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/llm"
	"github.com/abhisek/masteryloop/internal/questions"
)

// Service generates learning cards and caches them per concept for the
// lifetime of the process. Returned cards are shared; callers must not
// modify them.
type Service struct {
	providers []llm.Named
	cfg       Config
	log       *zap.Logger

	mu    sync.Mutex
	cache map[string]*Card
}

// NewService creates a card service that tries providers in order.
func NewService(providers []llm.Named, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		providers: providers,
		cfg:       cfg,
		log:       log,
		cache:     make(map[string]*Card),
	}
}

// Generate returns the card for a concept. It always produces a card:
// provider failures fall back to the local template.
func (s *Service) Generate(ctx context.Context, c curriculum.Concept) *Card {
	if card, ok := s.cached(c.ID); ok {
		return card
	}

	card := s.build(ctx, c)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent caller may have won the race; keep the first card.
	if existing, ok := s.cache[c.ID]; ok {
		return existing
	}
	s.cache[c.ID] = card
	return card
}

// Cached returns a previously generated card without generating one.
func (s *Service) Cached(conceptID string) (*Card, bool) {
	return s.cached(conceptID)
}

func (s *Service) cached(conceptID string) (*Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cache[conceptID]
	return card, ok
}

func (s *Service) build(ctx context.Context, c curriculum.Concept) *Card {
	if s.cfg.PreferCurated {
		if card, ok := CuratedCard(c); ok {
			return card
		}
	}

	for _, p := range s.providers {
		card, err := s.generate(ctx, p.Provider, c)
		if err == nil {
			card.Provider = p.Name
			return card
		}
		s.log.Warn("learning card generation failed",
			zap.String("provider", p.Name),
			zap.String("concept", c.ID),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}

	s.log.Info("using local learning card", zap.String("concept", c.ID))
	return LocalCard(c)
}

type cardOutput struct {
	Definition   string                  `json:"definition"`
	VisualPrompt string                  `json:"visual_prompt"`
	Examples     []curriculum.Example    `json:"examples"`
	SubConcepts  []curriculum.SubConcept `json:"sub_concepts"`
	Quiz         []struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		Explanation  string   `json:"explanation"`
	} `json:"quiz"`
}

func (s *Service) generate(ctx context.Context, provider llm.Provider, c curriculum.Concept) (*Card, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLearningCard)

	req := llm.SingleTurn(systemPrompt, buildUserMessage(c), CardSchema).
		WithLimits(s.cfg.MaxTokens, s.cfg.Temperature)

	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("card generation: %w", err)
	}

	var out cardOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse card response: %w", err)
	}
	if out.Definition == "" {
		return nil, fmt.Errorf("card response has no definition")
	}

	quiz := make([]checkpoint.Question, len(out.Quiz))
	for i, q := range out.Quiz {
		quiz[i] = checkpoint.Question{
			ConceptID:    c.ID,
			Prompt:       q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}
	if verr := (&questions.StructuralValidator{}).Validate(quiz, nil); verr != nil {
		return nil, verr
	}

	return &Card{
		ConceptID:    c.ID,
		Title:        c.Title,
		Difficulty:   c.Difficulty,
		Definition:   out.Definition,
		VisualPrompt: out.VisualPrompt,
		Examples:     out.Examples,
		SubConcepts:  out.SubConcepts,
		Quiz:         quiz,
		Origin:       OriginAI,
	}, nil
}

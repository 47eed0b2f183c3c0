package questions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/llm"
)

// Named pairs a question source with a label used in logs and errors.
type Named struct {
	Name   string
	Source checkpoint.QuestionSource
}

// FallbackSource tries its sources in order and returns the first
// success. Callers cannot tell whether a fallback happened.
type FallbackSource struct {
	sources []Named
	log     *zap.Logger
}

// NewFallbackSource creates a FallbackSource over sources.
func NewFallbackSource(log *zap.Logger, sources ...Named) *FallbackSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackSource{sources: sources, log: log}
}

// Names returns the source names in the order they are tried.
func (f *FallbackSource) Names() []string {
	names := make([]string, len(f.sources))
	for i, s := range f.sources {
		names[i] = s.Name
	}
	return names
}

func (f *FallbackSource) Generate(ctx context.Context, conceptIDs []string) ([]checkpoint.Question, error) {
	if len(f.sources) == 0 {
		return nil, errors.New("no question sources configured")
	}

	var errs []error
	for i, s := range f.sources {
		qs, err := s.Source.Generate(ctx, conceptIDs)
		if err == nil {
			if i > 0 {
				f.log.Info("question source fallback used", zap.String("source", s.Name), zap.Int("position", i))
			}
			return qs, nil
		}
		f.log.Warn("question source failed",
			zap.String("source", s.Name),
			zap.Int("concepts", len(conceptIDs)),
			zap.String("kind", string(llm.Classify(err))),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))

		// A cancelled caller gets no further attempts.
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}

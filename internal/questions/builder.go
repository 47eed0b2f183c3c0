package questions

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/llm"
)

// LocalSourceName labels the offline source in the fallback chain.
const LocalSourceName = "local"

// NewSourceFromConfig assembles the fallback chain: the primary provider,
// the alternate provider, then the local source unless disabled.
// Providers that cannot be built are skipped.
func NewSourceFromConfig(ctx context.Context, llmCfg llm.Config, cfg Config, concepts ConceptLookup, events llm.EventRecorder, log *zap.Logger) *FallbackSource {
	if log == nil {
		log = zap.NewNop()
	}

	var chain []Named
	for _, p := range llm.NewProviders(ctx, llmCfg, events, log) {
		chain = append(chain, Named{Name: p.Name, Source: NewLLMSource(p.Provider, concepts, cfg)})
	}
	if !cfg.DisableLocal {
		chain = append(chain, Named{Name: LocalSourceName, Source: NewLocalSource(concepts)})
	}

	fs := NewFallbackSource(log, chain...)
	log.Debug("question sources configured", zap.Strings("chain", fs.Names()))
	return fs
}

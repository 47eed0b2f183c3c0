package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds the named provider from cfg and wraps it as
// caller → timeout → retry → rate limit → logging → base, so every retry
// waits for its own request slot. The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, name string, eventRepo EventRecorder, log *zap.Logger) (Provider, error) {
	if err := cfg.ValidateProvider(name); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch name {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", name, err)
	}

	logged := WithLogging(base, name, eventRepo, log)
	limited := WithRateLimit(logged, cfg.RequestsPerMinute, cfg.RequestBurst)
	retried := WithRetry(limited, cfg.Retry, log)
	return WithTimeout(retried, cfg.Timeout), nil
}

// Named pairs a provider with the configuration name it was built from.
type Named struct {
	Name     string
	Provider Provider
}

// NewProviders builds the primary and, when configured, the alternate
// provider. Providers that cannot be built are skipped with a warning; the
// result may be empty.
func NewProviders(ctx context.Context, cfg Config, eventRepo EventRecorder, log *zap.Logger) []Named {
	if log == nil {
		log = zap.NewNop()
	}
	var out []Named
	for _, name := range []string{cfg.Provider, cfg.Alternate} {
		if name == "" || (len(out) > 0 && out[0].Name == name) {
			continue
		}
		p, err := NewProvider(ctx, cfg, name, eventRepo, log)
		if err != nil {
			log.Warn("llm provider disabled", zap.String("provider", name), zap.Error(err))
			continue
		}
		out = append(out, Named{Name: name, Provider: p})
	}
	return out
}

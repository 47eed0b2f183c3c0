package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitProvider spaces requests to one provider so bursts of card and
// question generation stay under the vendor's request quota.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit allows perMinute requests per minute with a burst of
// burst. A non-positive perMinute returns p unchanged.
func WithRateLimit(p Provider, perMinute, burst int) Provider {
	if perMinute <= 0 {
		return p
	}
	burst = max(burst, 1)
	every := time.Minute / time.Duration(perMinute)
	return &RateLimitProvider{inner: p, limiter: rate.NewLimiter(rate.Every(every), burst)}
}

// Generate waits for a request slot; a context that ends first cancels
// the call.
func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}

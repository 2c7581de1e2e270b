package llm

import (
	"context"

	"github.com/leagueworks/schedparse/internal/model"
	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles calls to an underlying provider. External
// classification, NER, and review calls share one limiter so concurrent
// per-segment fan-out cannot burst past the provider's rate limits.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps a provider with a request rate limit
func NewRateLimited(inner Provider, requestsPerSecond float64, burst int) *RateLimitedProvider {
	if burst <= 0 {
		burst = 5
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}

	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the underlying provider name
func (p *RateLimitedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the underlying provider
func (p *RateLimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Classify waits for rate clearance, then delegates
func (p *RateLimitedProvider) Classify(ctx context.Context, text string, labels []string) (*Classification, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.Classify(ctx, text, labels)
}

// ExtractEntities waits for rate clearance, then delegates
func (p *RateLimitedProvider) ExtractEntities(ctx context.Context, text string) ([]model.Entity, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.ExtractEntities(ctx, text)
}

// Review waits for rate clearance, then delegates
func (p *RateLimitedProvider) Review(ctx context.Context, record model.ParsedConstraint, original string) (*Review, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.Review(ctx, record, original)
}

package repositories

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedModel wraps a ForecastModel with rate limiting
type RateLimitedModel struct {
	model   ForecastModel
	limiter *rate.Limiter
}

// NewRateLimitedModel creates a new rate limited model.
// rps is the maximum calls per second allowed (can be fractional), burst the maximum burst size.
func NewRateLimitedModel(model ForecastModel, rps float64, burst int) *RateLimitedModel {
	return &RateLimitedModel{
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Forecast waits for limiter permission or context cancellation, then delegates.
func (r *RateLimitedModel) Forecast(ctx context.Context, steps int) ([]float64, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	return r.model.Forecast(ctx, steps)
}

func (r *RateLimitedModel) Name() string {
	return r.model.Name()
}

var (
	_ ForecastModel = (*RateLimitedModel)(nil)
	_ ForecastModel = (*ArtifactModel)(nil)
	_ ForecastModel = (*RemoteModel)(nil)
)

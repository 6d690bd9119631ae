package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"ulascansenturk/watchface-weather/internal/location"
)

// RateLimitedProvider delays outbound weather requests so the provider's
// request quota is respected. It never drops a request.
type RateLimitedProvider struct {
	provider WeatherProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider allows rps requests per second with the given burst.
// rps of zero disables limiting.
func NewRateLimitedProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedProvider {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(limit, burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

func (r *RateLimitedProvider) GetCurrentWeather(ctx context.Context, coord location.Coordinate) (WeatherReading, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return WeatherReading{}, fmt.Errorf("%w: rate limit wait canceled: %v", ErrTransport, err)
	}

	return r.provider.GetCurrentWeather(ctx, coord)
}

func (r *RateLimitedProvider) Name() string {
	return r.name
}

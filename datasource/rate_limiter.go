package datasource

import (
	"context"
	"fmt"

	"space-explorer/models"

	"golang.org/x/time/rate"
)

// RateLimitedMarsWeatherSource wraps a MarsWeatherSource with rate limiting
type RateLimitedMarsWeatherSource struct {
	source  MarsWeatherSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedMarsWeatherSource creates a new rate limited weather source
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedMarsWeatherSource(source MarsWeatherSource, rps float64, burst int) *RateLimitedMarsWeatherSource {
	return NewRateLimitedMarsWeatherSourceWithLimiter(source, rate.NewLimiter(rate.Limit(rps), burst))
}

// NewRateLimitedMarsWeatherSourceWithLimiter wraps source with an existing limiter.
// Sources that spend the same API key should share one limiter.
func NewRateLimitedMarsWeatherSourceWithLimiter(source MarsWeatherSource, limiter *rate.Limiter) *RateLimitedMarsWeatherSource {
	return &RateLimitedMarsWeatherSource{
		source:  source,
		limiter: limiter,
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchMarsWeather fetches the raw feed, respecting rate limits
func (r *RateLimitedMarsWeatherSource) FetchMarsWeather(ctx context.Context) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchMarsWeather(ctx)
}

// Name returns the source name
func (r *RateLimitedMarsWeatherSource) Name() string {
	return r.name
}

// RateLimitedPictureSource wraps a PictureSource with rate limiting.
// Single and batch requests share one limiter since they count against the same API key.
type RateLimitedPictureSource struct {
	source  PictureSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedPictureSource creates a new rate limited picture source
func NewRateLimitedPictureSource(source PictureSource, rps float64, burst int) *RateLimitedPictureSource {
	return NewRateLimitedPictureSourceWithLimiter(source, rate.NewLimiter(rate.Limit(rps), burst))
}

// NewRateLimitedPictureSourceWithLimiter wraps source with an existing limiter
func NewRateLimitedPictureSourceWithLimiter(source PictureSource, limiter *rate.Limiter) *RateLimitedPictureSource {
	return &RateLimitedPictureSource{
		source:  source,
		limiter: limiter,
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchPicture fetches today's picture, respecting rate limits
func (r *RateLimitedPictureSource) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.APODResponse{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchPicture(ctx)
}

// FetchPictures fetches a batch of pictures, respecting rate limits
func (r *RateLimitedPictureSource) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchPictures(ctx, count)
}

// Name returns the source name
func (r *RateLimitedPictureSource) Name() string {
	return r.name
}

// Verify that our rate limited types implement the required interfaces
var (
	_ MarsWeatherSource = (*RateLimitedMarsWeatherSource)(nil)
	_ PictureSource     = (*RateLimitedPictureSource)(nil)
)

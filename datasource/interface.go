package datasource

import (
	"context"
	"errors"

	"space-explorer/models"
)

// ErrUnexpectedStatus is returned when an upstream API answers with a non-200 status
var ErrUnexpectedStatus = errors.New("unexpected status")

// MarsWeatherSource defines the interface for a Mars weather feed. The feed is
// returned as raw bytes; decoding is the caller's concern.
type MarsWeatherSource interface {
	Name() string
	FetchMarsWeather(ctx context.Context) ([]byte, error)
}

// PictureSource defines the interface for a picture-of-the-day feed
type PictureSource interface {
	// Name returns the source's name
	Name() string

	// FetchPicture fetches today's picture
	FetchPicture(ctx context.Context) (models.APODResponse, error)

	// FetchPictures fetches up to count pictures
	FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error)
}

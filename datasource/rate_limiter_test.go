package datasource

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"space-explorer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingSource struct {
	calls atomic.Int32
}

func (c *countingSource) Name() string { return "Counting" }

func (c *countingSource) FetchMarsWeather(ctx context.Context) ([]byte, error) {
	c.calls.Add(1)
	return []byte(`{"sol_keys":[]}`), nil
}

func (c *countingSource) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	c.calls.Add(1)
	return models.APODResponse{Title: "today"}, nil
}

func (c *countingSource) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	c.calls.Add(1)
	return make([]models.APODResponse, count), nil
}

func TestRateLimitedMarsWeatherSource(t *testing.T) {
	src := &countingSource{}
	limited := NewRateLimitedMarsWeatherSource(src, 1, 1)

	assert.Equal(t, "Counting [Rate Limited]", limited.Name())

	raw, err := limited.FetchMarsWeather(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"sol_keys":[]}`, string(raw))

	// The burst is used up, so a second call cannot get a token before the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = limited.FetchMarsWeather(ctx)
	require.Error(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRateLimitedPictureSource(t *testing.T) {
	src := &countingSource{}
	limited := NewRateLimitedPictureSource(src, 100, 2)

	pic, err := limited.FetchPicture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "today", pic.Title)

	pics, err := limited.FetchPictures(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, pics, 3)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestRateLimitedPictureSource_CanceledContext(t *testing.T) {
	src := &countingSource{}
	limited := NewRateLimitedPictureSource(src, 0.001, 1)

	_, err := limited.FetchPicture(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = limited.FetchPictures(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestSharedLimiterSpansSources(t *testing.T) {
	src := &countingSource{}
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	weather := NewRateLimitedMarsWeatherSourceWithLimiter(src, limiter)
	pictures := NewRateLimitedPictureSourceWithLimiter(src, limiter)

	_, err := weather.FetchMarsWeather(context.Background())
	require.NoError(t, err)

	// The weather call spent the only token, so the picture source has to wait.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = pictures.FetchPicture(ctx)
	require.Error(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, "Counting [Rate Limited]", pictures.Name())
}

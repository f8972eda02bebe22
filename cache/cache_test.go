package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"space-explorer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPictureSource struct {
	calls int
	err   error
}

func (s *stubPictureSource) Name() string { return "Stub" }

func (s *stubPictureSource) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	s.calls++
	if s.err != nil {
		return models.APODResponse{}, s.err
	}
	return models.APODResponse{Title: "today"}, nil
}

func (s *stubPictureSource) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return make([]models.APODResponse, count), nil
}

func TestCachedPictureSource_HitAndExpiry(t *testing.T) {
	src := &stubPictureSource{}
	c := NewCachedPictureSource(src, time.Hour)
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	assert.Equal(t, "Stub [Cached]", c.Name())

	for i := 0; i < 3; i++ {
		p, err := c.FetchPicture(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "today", p.Title)
	}
	assert.Equal(t, 1, src.calls)

	hits, misses := c.CacheStats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)

	now = now.Add(2 * time.Hour)
	_, err := c.FetchPicture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCachedPictureSource_KeysByCount(t *testing.T) {
	src := &stubPictureSource{}
	c := NewCachedPictureSource(src, time.Hour)

	three, err := c.FetchPictures(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, three, 3)

	five, err := c.FetchPictures(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, five, 5)

	_, err = c.FetchPictures(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCachedPictureSource_ErrorsAreNotCached(t *testing.T) {
	src := &stubPictureSource{err: errors.New("feed unavailable")}
	c := NewCachedPictureSource(src, time.Hour)

	_, err := c.FetchPicture(context.Background())
	require.Error(t, err)

	src.err = nil
	p, err := c.FetchPicture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "today", p.Title)
	assert.Equal(t, 2, src.calls)
}

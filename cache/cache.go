package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"space-explorer/datasource"
	"space-explorer/models"
)

const todayKey = "today"

// CachedPictureSource wraps a PictureSource and adds caching functionality.
// Only pictures are cached; Mars weather is recomputed on every fetch.
type CachedPictureSource struct {
	source         datasource.PictureSource
	cache          map[string]cacheEntry // key is "today" or "count:N"
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
	now            func() time.Time
}

// cacheEntry represents cached pictures with their timestamp
type cacheEntry struct {
	Data      []models.APODResponse
	Timestamp time.Time
}

// NewCachedPictureSource creates a new cached wrapper around a picture source
func NewCachedPictureSource(source datasource.PictureSource, cacheDuration time.Duration) *CachedPictureSource {
	return &CachedPictureSource{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
		now:           time.Now,
	}
}

// Name returns the name of the underlying source with a [Cached] suffix
func (c *CachedPictureSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchPicture fetches today's picture, using cache when available
func (c *CachedPictureSource) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	pictures, err := c.fetch(ctx, todayKey, func(ctx context.Context) ([]models.APODResponse, error) {
		p, err := c.source.FetchPicture(ctx)
		if err != nil {
			return nil, err
		}
		return []models.APODResponse{p}, nil
	})
	if err != nil {
		return models.APODResponse{}, err
	}
	return pictures[0], nil
}

// FetchPictures fetches a batch of pictures, using cache when available
func (c *CachedPictureSource) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	cacheKey := fmt.Sprintf("count:%d", count)
	return c.fetch(ctx, cacheKey, func(ctx context.Context) ([]models.APODResponse, error) {
		return c.source.FetchPictures(ctx, count)
	})
}

func (c *CachedPictureSource) fetch(ctx context.Context, key string, load func(context.Context) ([]models.APODResponse, error)) ([]models.APODResponse, error) {
	// First check if we have this data in the cache
	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	// If found and not expired, return the cached data
	if found && c.now().Sub(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		slog.Debug("picture cache hit",
			"key", key,
			"source", c.source.Name(),
			"age", c.now().Sub(entry.Timestamp).Round(time.Second),
		)
		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh data
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	slog.Debug("picture cache miss", "key", key, "source", c.source.Name())

	data, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.cache[key] = cacheEntry{
		Data:      data,
		Timestamp: c.now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedPictureSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedPictureSource implements the PictureSource interface
var _ datasource.PictureSource = (*CachedPictureSource)(nil)

package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"space-explorer/api"
	"space-explorer/datasource"
)

// Collector periodically refreshes the Mars weather and picture stores
type Collector struct {
	weatherSource  datasource.MarsWeatherSource
	pictureSources []datasource.PictureSource
	weatherStore   *api.WeatherStore
	pictureStore   *api.PictureStore
	interval       time.Duration
	pictureCount   int
	fetchTimeout   time.Duration
}

// NewCollector creates a collector that refreshes every interval
func NewCollector(
	weatherSource datasource.MarsWeatherSource,
	pictureSources []datasource.PictureSource,
	weatherStore *api.WeatherStore,
	pictureStore *api.PictureStore,
	interval time.Duration,
	pictureCount int,
) *Collector {
	return &Collector{
		weatherSource:  weatherSource,
		pictureSources: pictureSources,
		weatherStore:   weatherStore,
		pictureStore:   pictureStore,
		interval:       interval,
		pictureCount:   pictureCount,
		fetchTimeout:   30 * time.Second, // Default timeout
	}
}

// SetFetchTimeout changes the timeout for one refresh round. Non-positive
// values are ignored.
func (c *Collector) SetFetchTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	c.fetchTimeout = timeout
}

// Start refreshes immediately and then on every tick until ctx is done.
// The returned function stops collection and waits for it to finish.
func (c *Collector) Start(ctx context.Context) func() {
	collectionCtx, cancelCollection := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.run(collectionCtx)
	}()

	return func() {
		cancelCollection()
		wg.Wait()
	}
}

func (c *Collector) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.RefreshOnce(ctx)

	for {
		select {
		case <-ticker.C:
			c.RefreshOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RefreshOnce fetches both feeds concurrently and stores the results
func (c *Collector) RefreshOnce(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	slog.Debug("refreshing feeds")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		report := api.LoadMarsWeather(fetchCtx, c.weatherSource)
		if ctx.Err() != nil {
			return
		}
		c.weatherStore.UpdateWeather(report)
	}()

	go func() {
		defer wg.Done()
		report := api.LoadPictures(fetchCtx, c.pictureSources, c.pictureCount)
		if ctx.Err() != nil {
			return
		}
		c.pictureStore.UpdatePictures(report)
	}()

	wg.Wait()
	slog.Debug("feed refresh complete")
}

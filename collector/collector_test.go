package collector

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"space-explorer/api"
	"space-explorer/datasource"
	"space-explorer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedStub struct {
	weatherCalls atomic.Int32
}

func (f *feedStub) Name() string { return "Stub" }

func (f *feedStub) FetchMarsWeather(ctx context.Context) ([]byte, error) {
	f.weatherCalls.Add(1)
	return []byte(`{"sol_keys":["4012"],"4012":{"First_UTC":"2024-10-15T00:00:00Z"}}`), nil
}

func (f *feedStub) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	return models.APODResponse{Title: "today"}, nil
}

func (f *feedStub) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	return make([]models.APODResponse, count), nil
}

// hangingFeed never answers; it returns only once its context is done
type hangingFeed struct{}

func (hangingFeed) Name() string { return "Hanging" }

func (hangingFeed) FetchMarsWeather(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangingFeed) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	<-ctx.Done()
	return models.APODResponse{}, ctx.Err()
}

func (hangingFeed) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRefreshOnce(t *testing.T) {
	stub := &feedStub{}
	ws := api.NewWeatherStore()
	ps := api.NewPictureStore()
	c := NewCollector(stub, []datasource.PictureSource{stub}, ws, ps, time.Hour, 2)

	c.RefreshOnce(context.Background())

	weather, ok := ws.Latest()
	require.True(t, ok, "weather store was not updated")
	assert.Equal(t, api.SourceLive, weather.Source)
	require.Len(t, weather.Records, 1)
	assert.Equal(t, 4012, weather.Records[0].Sol)

	pictures, ok := ps.Latest()
	require.True(t, ok, "picture store was not updated")
	assert.Len(t, pictures.Pictures, 2)
}

func TestRefreshOnce_FetchTimeoutFallsBackToSamples(t *testing.T) {
	ws := api.NewWeatherStore()
	ps := api.NewPictureStore()
	feed := hangingFeed{}
	c := NewCollector(feed, []datasource.PictureSource{feed}, ws, ps, time.Hour, 3)
	c.SetFetchTimeout(20 * time.Millisecond)

	start := time.Now()
	c.RefreshOnce(context.Background())
	assert.Less(t, time.Since(start), 2*time.Second, "refresh should stop at the fetch timeout")

	weather, ok := ws.Latest()
	require.True(t, ok)
	assert.Equal(t, api.SourceSample, weather.Source)
	assert.Equal(t, api.WeatherUnavailableNotice, weather.Notice)

	pictures, ok := ps.Latest()
	require.True(t, ok)
	assert.Equal(t, api.SourceSample, pictures.Source)
	assert.Len(t, pictures.Pictures, 3)
}

func TestSetFetchTimeout_IgnoresNonPositive(t *testing.T) {
	c := NewCollector(nil, nil, api.NewWeatherStore(), api.NewPictureStore(), time.Hour, 1)

	c.SetFetchTimeout(5 * time.Second)
	c.SetFetchTimeout(0)
	c.SetFetchTimeout(-time.Second)
	assert.Equal(t, 5*time.Second, c.fetchTimeout)
}

func TestRefreshOnce_CanceledRoundLeavesStoresAlone(t *testing.T) {
	ws := api.NewWeatherStore()
	ps := api.NewPictureStore()
	feed := hangingFeed{}
	c := NewCollector(feed, []datasource.PictureSource{feed}, ws, ps, time.Hour, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.RefreshOnce(ctx)

	_, ok := ws.Latest()
	assert.False(t, ok, "canceled refresh must not store weather")
	_, ok = ps.Latest()
	assert.False(t, ok, "canceled refresh must not store pictures")
}

func TestStart_RefreshesUntilStopped(t *testing.T) {
	stub := &feedStub{}
	c := NewCollector(stub, nil, api.NewWeatherStore(), api.NewPictureStore(), 10*time.Millisecond, 1)

	stop := c.Start(context.Background())

	require.Eventually(t, func() bool {
		return stub.weatherCalls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
	stop()

	calls := stub.weatherCalls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, stub.weatherCalls.Load(), "collector kept fetching after stop")
}

func TestStart_NoPictureSourcesStoresSamples(t *testing.T) {
	ps := api.NewPictureStore()
	c := NewCollector(nil, nil, api.NewWeatherStore(), ps, time.Hour, 3)

	stop := c.Start(context.Background())
	defer stop()

	require.Eventually(t, func() bool {
		_, ok := ps.Latest()
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	report, _ := ps.Latest()
	assert.Equal(t, api.SourceSample, report.Source)
	assert.Len(t, report.Pictures, 3)
}

package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"space-explorer/datasource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_FetchMarsWeather(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"api_key":  q.Get("api_key"),
			"feedtype": q.Get("feedtype"),
			"ver":      q.Get("ver"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sol_keys":["4012"],"4012":{"Season":"fall"}}`))
	}))
	t.Cleanup(ts.Close)

	src := NewSourceWithBaseURL("test-key", ts.URL+"/insight_weather/")
	assert.Equal(t, "InSight", src.Name())

	raw, err := src.FetchMarsWeather(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"api_key": "test-key", "feedtype": "json", "ver": "1.0"}, gotQuery)

	records := Decode(raw)
	require.Len(t, records, 1)
	assert.Equal(t, 4012, records[0].Sol)
}

func TestSource_FetchMarsWeather_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over rate limit", http.StatusTooManyRequests)
	}))
	t.Cleanup(ts.Close)

	src := NewSourceWithBaseURL("DEMO_KEY", ts.URL)
	_, err := src.FetchMarsWeather(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, datasource.ErrUnexpectedStatus)
}

func TestSource_FetchMarsWeather_CanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSourceWithBaseURL("DEMO_KEY", ts.URL).FetchMarsWeather(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

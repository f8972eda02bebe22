package apod

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"space-explorer/datasource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const todayJSON = `{
	"date": "2024-10-15",
	"explanation": "A barred spiral galaxy.",
	"hdurl": "https://apod.nasa.gov/apod/image/andromeda_hd.jpg",
	"media_type": "image",
	"service_version": "v1",
	"title": "Andromeda",
	"url": "https://apod.nasa.gov/apod/image/andromeda.jpg"
}`

func newAPODServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			http.Error(w, `{"error":{"code":"API_KEY_INVALID"}}`, http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("count") {
		case "":
			_, _ = w.Write([]byte(todayJSON))
		case "2":
			_, _ = w.Write([]byte(`[
				{"date":"2021-01-01","explanation":"one","title":"First","media_type":"image"},
				{"date":"2022-02-02","explanation":"two","title":"Second","media_type":"video"}
			]`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchPicture(t *testing.T) {
	ts := newAPODServer(t)
	src := NewSourceWithBaseURL("test-key", ts.URL)

	pic, err := src.FetchPicture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-10-15", pic.Date)
	assert.Equal(t, "Andromeda", pic.Title)
	assert.Equal(t, "A barred spiral galaxy.", pic.Explanation)
	assert.Equal(t, "https://apod.nasa.gov/apod/image/andromeda.jpg", pic.URL)
	assert.Equal(t, "https://apod.nasa.gov/apod/image/andromeda_hd.jpg", pic.HDURL)
	assert.Equal(t, "image", pic.MediaType)
}

func TestFetchPictures(t *testing.T) {
	ts := newAPODServer(t)
	src := NewSourceWithBaseURL("test-key", ts.URL)

	pics, err := src.FetchPictures(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pics, 2)
	assert.Equal(t, "First", pics[0].Title)
	assert.Equal(t, "video", pics[1].MediaType)
}

func TestFetchPictures_BadBody(t *testing.T) {
	ts := newAPODServer(t)
	src := NewSourceWithBaseURL("test-key", ts.URL)

	_, err := src.FetchPictures(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse API response")
}

func TestFetchPicture_BadKey(t *testing.T) {
	ts := newAPODServer(t)
	src := NewSourceWithBaseURL("wrong", ts.URL)

	_, err := src.FetchPicture(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, datasource.ErrUnexpectedStatus)
	assert.Equal(t, "APOD", src.Name())
}

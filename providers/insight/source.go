package insight

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"space-explorer/datasource"
)

// DefaultBaseURL is the NASA InSight weather endpoint
const DefaultBaseURL = "https://api.nasa.gov/insight_weather/"

// Source is an implementation of the MarsWeatherSource interface for the NASA InSight API
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Source implements datasource.MarsWeatherSource
var _ datasource.MarsWeatherSource = (*Source)(nil)

// NewSource creates a new InSight weather source
func NewSource(apiKey string) *Source {
	return NewSourceWithBaseURL(apiKey, DefaultBaseURL)
}

// NewSourceWithBaseURL creates an InSight source against a different endpoint
func NewSourceWithBaseURL(apiKey, baseURL string) *Source {
	return &Source{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the name of this data source
func (s *Source) Name() string {
	return "InSight"
}

// FetchMarsWeather fetches the raw weather feed
func (s *Source) FetchMarsWeather(ctx context.Context) ([]byte, error) {
	params := url.Values{}
	params.Add("api_key", s.apiKey)
	params.Add("feedtype", "json")
	params.Add("ver", "1.0")

	slog.Debug("requesting mars weather", "source", s.Name(), "url", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", datasource.ErrUnexpectedStatus, resp.StatusCode)
	}

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return rawData, nil
}

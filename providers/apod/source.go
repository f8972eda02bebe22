package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"space-explorer/datasource"
	"space-explorer/models"
)

// DefaultBaseURL is the NASA Astronomy Picture of the Day endpoint
const DefaultBaseURL = "https://api.nasa.gov/planetary/apod"

// Source provides pictures from the NASA APOD API
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Source implements PictureSource
var _ datasource.PictureSource = (*Source)(nil)

// NewSource creates a new APOD source
func NewSource(apiKey string) *Source {
	return NewSourceWithBaseURL(apiKey, DefaultBaseURL)
}

// NewSourceWithBaseURL creates an APOD source against a different endpoint
func NewSourceWithBaseURL(apiKey, baseURL string) *Source {
	return &Source{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (s *Source) Name() string {
	return "APOD"
}

// FetchPicture gets today's picture
func (s *Source) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	var picture models.APODResponse
	if err := s.get(ctx, url.Values{}, &picture); err != nil {
		return models.APODResponse{}, err
	}
	return picture, nil
}

// FetchPictures gets count randomly chosen pictures
func (s *Source) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	params := url.Values{}
	params.Add("count", strconv.Itoa(count))

	var pictures []models.APODResponse
	if err := s.get(ctx, params, &pictures); err != nil {
		return nil, err
	}
	return pictures, nil
}

func (s *Source) get(ctx context.Context, params url.Values, out any) error {
	params.Add("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w %d: %s", datasource.ErrUnexpectedStatus, resp.StatusCode, string(rawData))
	}

	if err := json.Unmarshal(rawData, out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}

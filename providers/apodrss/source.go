package apodrss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"space-explorer/datasource"
	"space-explorer/models"

	"github.com/mmcdole/gofeed"
)

// DefaultFeedURL is the public APOD RSS feed. It needs no API key.
const DefaultFeedURL = "https://apod.nasa.gov/apod.rss"

// ErrEmptyFeed is returned when the feed has no items
var ErrEmptyFeed = errors.New("feed has no items")

// Source reads pictures from the APOD RSS feed
type Source struct {
	feedURL string
	client  *http.Client
	parser  *gofeed.Parser
}

// Ensure Source implements PictureSource
var _ datasource.PictureSource = (*Source)(nil)

// NewSource creates a new RSS picture source
func NewSource(feedURL string) *Source {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Source{
		feedURL: feedURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		parser: gofeed.NewParser(),
	}
}

// Name returns the provider name
func (s *Source) Name() string {
	return "APOD RSS"
}

// FetchPicture returns the newest item of the feed
func (s *Source) FetchPicture(ctx context.Context) (models.APODResponse, error) {
	pictures, err := s.FetchPictures(ctx, 1)
	if err != nil {
		return models.APODResponse{}, err
	}
	return pictures[0], nil
}

// FetchPictures returns up to count of the newest feed items
func (s *Source) FetchPictures(ctx context.Context, count int) ([]models.APODResponse, error) {
	feed, err := s.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}
	if len(feed.Items) == 0 {
		return nil, ErrEmptyFeed
	}

	items := feed.Items
	if count > 0 && count < len(items) {
		items = items[:count]
	}

	pictures := make([]models.APODResponse, 0, len(items))
	for _, item := range items {
		pictures = append(pictures, toAPOD(item))
	}
	return pictures, nil
}

func (s *Source) fetchFeed(ctx context.Context) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
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

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

func toAPOD(item *gofeed.Item) models.APODResponse {
	pic := models.APODResponse{
		Title:       strings.TrimSpace(item.Title),
		Explanation: strings.TrimSpace(item.Description),
		URL:         item.Link,
		MediaType:   "image",
	}
	if item.PublishedParsed != nil {
		pic.Date = item.PublishedParsed.UTC().Format(time.DateOnly)
	}
	if item.Image != nil && item.Image.URL != "" {
		pic.URL = item.Image.URL
	}
	return pic
}

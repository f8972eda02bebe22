package api

import (
	"sync"
	"time"

	"space-explorer/models"
)

// Report sources
const (
	SourceLive   = "live"
	SourceSample = "sample"
)

// MarsWeatherReport is what the weather screen shows: decoded sols, or the
// sample sols with a notice when the feed could not be used
type MarsWeatherReport struct {
	Records  []models.MarsWeather `json:"records"`
	Source   string               `json:"source"`
	Provider string               `json:"provider,omitempty"`
	Notice   string               `json:"notice,omitempty"`
	Updated  time.Time            `json:"updated"`
}

// PictureReport is what the photo screen shows
type PictureReport struct {
	Pictures []models.SpacePicture `json:"pictures"`
	Source   string                `json:"source"`
	Provider string                `json:"provider,omitempty"`
	Notice   string                `json:"notice,omitempty"`
	Updated  time.Time             `json:"updated"`
}

// WeatherStore holds the latest Mars weather report. Concurrent refreshes are
// not ordered: whichever update lands last wins.
type WeatherStore struct {
	report MarsWeatherReport
	set    bool
	mutex  sync.RWMutex
}

// NewWeatherStore creates a new in-memory weather report store
func NewWeatherStore() *WeatherStore {
	return &WeatherStore{}
}

// UpdateWeather replaces the stored report
func (s *WeatherStore) UpdateWeather(report MarsWeatherReport) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.report = report
	s.set = true
}

// Latest returns the stored report, if any
func (s *WeatherStore) Latest() (MarsWeatherReport, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.report, s.set
}

// PictureStore holds the latest picture report
type PictureStore struct {
	report PictureReport
	set    bool
	mutex  sync.RWMutex
}

// NewPictureStore creates a new in-memory picture report store
func NewPictureStore() *PictureStore {
	return &PictureStore{}
}

// UpdatePictures replaces the stored report
func (s *PictureStore) UpdatePictures(report PictureReport) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.report = report
	s.set = true
}

// Latest returns the stored report, if any
func (s *PictureStore) Latest() (PictureReport, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.report, s.set
}

// PruneOlderThan drops a picture report older than maxAge and reports whether it did
func (s *PictureStore) PruneOlderThan(maxAge time.Duration) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.set || !s.report.Updated.Before(time.Now().Add(-maxAge)) {
		return false
	}
	s.report = PictureReport{}
	s.set = false
	return true
}

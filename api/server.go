package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"space-explorer/datasource"
	"space-explorer/models"
)

const (
	defaultPictureCount = 5
	maxPictureCount     = 10
)

// Server represents the API server
type Server struct {
	weatherStore   *WeatherStore
	pictureStore   *PictureStore
	server         *http.Server
	weatherSource  datasource.MarsWeatherSource
	pictureSources []datasource.PictureSource
	launches       []models.SpaceLaunch
}

// NewServer creates a new API server
func NewServer(weatherStore *WeatherStore, pictureStore *PictureStore, addr string) *Server {
	mux := http.NewServeMux()

	server := &Server{
		weatherStore: weatherStore,
		pictureStore: pictureStore,
		launches:     models.SampleLaunches(),
		server: &http.Server{
			Addr:              addr,
			Handler:           requestLogger(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Mars weather
	mux.HandleFunc("GET /api/mars/weather", server.handleGetMarsWeather)
	mux.HandleFunc("POST /api/mars/weather/refresh", server.handleRefreshMarsWeather)

	// Pictures
	mux.HandleFunc("GET /api/pictures", server.handleGetPictures)
	mux.HandleFunc("GET /api/pictures/today", server.handleGetTodayPicture)

	// Launch schedule
	mux.HandleFunc("GET /api/launches", server.handleGetLaunches)

	// Health check
	mux.HandleFunc("GET /api/health", server.handleHealthCheck)

	return server
}

// RegisterWeatherSource sets the Mars weather feed used for on-demand refreshes
func (s *Server) RegisterWeatherSource(source datasource.MarsWeatherSource) {
	s.weatherSource = source
}

// RegisterPictureSources sets the picture sources, tried in order
func (s *Server) RegisterPictureSources(sources []datasource.PictureSource) {
	s.pictureSources = sources
}

// Handler returns the HTTP handler, including request logging
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// HTTPServer exposes the underlying server for shutdown
func (s *Server) HTTPServer() *http.Server {
	return s.server
}

// Start begins the API server
func (s *Server) Start() error {
	slog.Info("http listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// handleGetMarsWeather returns the latest report, loading it if nothing is stored yet
func (s *Server) handleGetMarsWeather(w http.ResponseWriter, r *http.Request) {
	report, ok := s.weatherStore.Latest()
	if !ok {
		report = LoadMarsWeather(r.Context(), s.weatherSource)
		if r.Context().Err() != nil {
			return
		}
		s.weatherStore.UpdateWeather(report)
	}
	writeJSON(w, http.StatusOK, report)
}

// handleRefreshMarsWeather fetches the feed now. Overlapping refreshes are
// independent and the last one to finish wins.
func (s *Server) handleRefreshMarsWeather(w http.ResponseWriter, r *http.Request) {
	report := LoadMarsWeather(r.Context(), s.weatherSource)
	if r.Context().Err() != nil {
		// client went away; discard the result
		return
	}
	s.weatherStore.UpdateWeather(report)
	writeJSON(w, http.StatusOK, report)
}

// handleGetPictures returns a batch of pictures. Without a count the stored
// batch is served when there is one.
func (s *Server) handleGetPictures(w http.ResponseWriter, r *http.Request) {
	count := defaultPictureCount
	countStr := r.URL.Query().Get("count")
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n <= 0 || n > maxPictureCount {
			writeError(w, http.StatusBadRequest, "'count' must be an integer between 1 and 10")
			return
		}
		count = n
	}

	if countStr == "" {
		if report, ok := s.pictureStore.Latest(); ok {
			writeJSON(w, http.StatusOK, report)
			return
		}
	}

	report := LoadPictures(r.Context(), s.pictureSources, count)
	if r.Context().Err() != nil {
		return
	}
	if countStr == "" {
		s.pictureStore.UpdatePictures(report)
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGetTodayPicture returns today's picture
func (s *Server) handleGetTodayPicture(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LoadTodayPicture(r.Context(), s.pictureSources))
}

// handleGetLaunches returns the launch schedule filtered by the q parameter
func (s *Server) handleGetLaunches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	launches := models.FilterLaunches(s.launches, query)

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    query,
		"launches": launches,
		"count":    len(launches),
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error":   http.StatusText(status),
		"message": msg,
	})
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"space-explorer/api"
	"space-explorer/cache"
	"space-explorer/collector"
	"space-explorer/config"
	"space-explorer/datasource"
	"space-explorer/logging"
	"space-explorer/providers/apod"
	"space-explorer/providers/apodrss"
	"space-explorer/providers/insight"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const appName = "space-explorer"

// Default version is "dev" if not set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	// Parse command line arguments
	port := flag.Int("port", 0, "Port to run the server on (overrides HTTP_ADDR)")
	refreshInterval := flag.Duration("refresh", 30*time.Minute, "Feed refresh interval (0 disables background refresh)")
	configFile := flag.String("config", "config.json", "Path to configuration file (.json, .yaml or .yml)")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable NASA API rate limiting")
	fetchTimeout := flag.Duration("fetch-timeout", 30*time.Second, "Timeout for one background refresh round")
	flag.Parse()

	nasa, err := config.LoadFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadFromEnv(nasa)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg.RefreshInterval = *refreshInterval
	cfg.FetchTimeout = *fetchTimeout
	cfg.RateLimit = *enableRateLimiting
	if *port > 0 {
		cfg.HTTPAddr = fmt.Sprintf(":%d", *port)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg, version, appName))
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	slog.Info("starting",
		"version", version,
		"env", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"refresh", cfg.RefreshInterval,
		"fetchTimeout", cfg.FetchTimeout,
		"rateLimit", cfg.RateLimit,
		"demoKey", cfg.NASA.APIKey == config.DefaultAPIKey,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("shutdown complete")
}

func run(ctx context.Context, cfg config.Config) error {
	// Both NASA APIs spend the same key, so they share one limiter
	var limiter *rate.Limiter
	if cfg.RateLimit {
		rps, burst := nasaRate(cfg.NASA.APIKey)
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
		slog.Info("applied rate limiting", "rps", rps, "burst", burst)
	}

	weatherSource := newWeatherSource(cfg, limiter)
	pictureSources := newPictureSources(cfg, limiter)
	if weatherSource == nil {
		slog.Warn("InSight feed disabled; serving sample Mars weather")
	}
	if len(pictureSources) == 0 {
		slog.Warn("no picture sources enabled; serving sample pictures")
	}

	// Create in-memory stores for the presentation state
	weatherStore := api.NewWeatherStore()
	pictureStore := api.NewPictureStore()

	server := api.NewServer(weatherStore, pictureStore, cfg.HTTPAddr)
	server.RegisterWeatherSource(weatherSource)
	server.RegisterPictureSources(pictureSources)

	if cfg.RefreshInterval > 0 {
		c := collector.NewCollector(weatherSource, pictureSources, weatherStore, pictureStore, cfg.RefreshInterval, cfg.NASA.PictureCount)
		c.SetFetchTimeout(cfg.FetchTimeout)
		stopCollector := c.Start(ctx)
		defer stopCollector()
	}

	// Periodically drop picture batches that are too old to show
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if pictureStore.PruneOlderThan(24 * time.Hour) {
					slog.Info("pruned stale pictures")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := server.HTTPServer().Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// newWeatherSource returns nil when the InSight feed is disabled. A nil
// limiter leaves the source unlimited.
func newWeatherSource(cfg config.Config, limiter *rate.Limiter) datasource.MarsWeatherSource {
	if !cfg.NASA.InsightEnabled {
		return nil
	}
	src := insight.NewSource(cfg.NASA.APIKey)
	if limiter == nil {
		return src
	}
	return datasource.NewRateLimitedMarsWeatherSourceWithLimiter(src, limiter)
}

func newPictureSources(cfg config.Config, limiter *rate.Limiter) []datasource.PictureSource {
	var sources []datasource.PictureSource

	if cfg.NASA.APODEnabled {
		var src datasource.PictureSource = apod.NewSource(cfg.NASA.APIKey)
		if limiter != nil {
			src = datasource.NewRateLimitedPictureSourceWithLimiter(src, limiter)
		}
		sources = append(sources, cache.NewCachedPictureSource(src, time.Hour))
	}

	if cfg.NASA.APODRSSEnabled {
		sources = append(sources, cache.NewCachedPictureSource(apodrss.NewSource(cfg.NASA.APODRSSURL), time.Hour))
	}

	return sources
}

// nasaRate returns the shared request rate for a key. DEMO_KEY allows 30
// requests an hour per IP and registered keys allow 1000; the burst plus one
// hour of refill stays within that quota.
func nasaRate(apiKey string) (float64, int) {
	if apiKey == config.DefaultAPIKey {
		return 27.0 / 3600.0, 3
	}
	return 995.0 / 3600.0, 5
}

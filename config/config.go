package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIKey is NASA's shared demo key, used when NASA_API_KEY is not set
const DefaultAPIKey = "DEMO_KEY"

// Config represents the application configuration
type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// RefreshInterval is how often the collector refreshes the feeds; zero disables it
	RefreshInterval time.Duration
	// FetchTimeout bounds one collector refresh round
	FetchTimeout time.Duration
	RateLimit    bool

	NASA NASAConfig
}

// NASAConfig holds the NASA API settings. It can be read from a JSON or YAML file.
type NASAConfig struct {
	APIKey         string `json:"apiKey" yaml:"apiKey"`
	InsightEnabled bool   `json:"insightEnabled" yaml:"insightEnabled"`
	APODEnabled    bool   `json:"apodEnabled" yaml:"apodEnabled"`
	APODRSSEnabled bool   `json:"apodRSSEnabled" yaml:"apodRSSEnabled"`
	APODRSSURL     string `json:"apodRSSURL" yaml:"apodRSSURL"`
	PictureCount   int    `json:"pictureCount" yaml:"pictureCount"`
}

// DefaultNASAConfig creates the NASA configuration used when no file is given
func DefaultNASAConfig() NASAConfig {
	return NASAConfig{
		InsightEnabled: true,
		APODEnabled:    true,
		APODRSSEnabled: false,
		PictureCount:   5,
	}
}

// LoadFile loads the NASA configuration from a JSON or YAML file. A missing
// file is not an error; the defaults are returned instead.
func LoadFile(filename string) (NASAConfig, error) {
	cfg := DefaultNASAConfig()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return NASAConfig{}, fmt.Errorf("read config %s: %w", filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return NASAConfig{}, fmt.Errorf("parse config %s: %w", filename, err)
	}

	if cfg.PictureCount <= 0 {
		cfg.PictureCount = DefaultNASAConfig().PictureCount
	}
	return cfg, nil
}

// LoadFromEnv resolves the environment-driven settings on top of nasa.
// NASA_API_KEY overrides the file's key; with neither set DEMO_KEY is used.
func LoadFromEnv(nasa NASAConfig) (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := ParseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	if key := strings.TrimSpace(os.Getenv("NASA_API_KEY")); key != "" {
		nasa.APIKey = key
	}
	if nasa.APIKey == "" {
		nasa.APIKey = DefaultAPIKey
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		HTTPAddr:        httpAddr,
		RefreshInterval: 30 * time.Minute,
		FetchTimeout:    30 * time.Second,
		RateLimit:       true,
		NASA:            nasa,
	}, nil
}

// ParseLogLevel parses debug, info, warn or error
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

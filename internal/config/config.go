// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the production deployment of the fund ledger service.
const DefaultAPIURL = "https://jwnazw2b41.execute-api.us-east-1.amazonaws.com/Prod"

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL   string
	HTTPTimeout  time.Duration
	LogLevel     string
	LogFormat    string
	TokenFile    string
	OtelExporter string
	OtelEndpoint string
	ChartOutDir  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:   strings.TrimRight(os.Getenv("LEDGER_API_URL"), "/"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		TokenFile:    os.Getenv("TOKEN_FILE"),
		OtelExporter: os.Getenv("OTEL_EXPORTER"),
		OtelEndpoint: os.Getenv("OTEL_ENDPOINT"),
		ChartOutDir:  os.Getenv("CHART_OUT_DIR"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIURL
	}

	cfg.HTTPTimeout = 15 * time.Second
	if timeoutStr := os.Getenv("HTTP_TIMEOUT_SECONDS"); timeoutStr != "" {
		if secs, err := strconv.Atoi(timeoutStr); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	if cfg.OtelExporter == "" {
		cfg.OtelExporter = "none"
	}

	if cfg.TokenFile == "" {
		path, err := defaultTokenFile()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token file location: %w", err)
		}
		cfg.TokenFile = path
	}

	if cfg.ChartOutDir == "" {
		cfg.ChartOutDir = "."
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultTokenFile places the persisted session token under the user config
// directory, the terminal analog of the browser's single localStorage key.
func defaultTokenFile() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "invierte", "token"), nil
}

// validate checks that all configuration values are usable.
func (c *Config) validate() error {
	var errs []string

	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		errs = append(errs, "LEDGER_API_URL must be an http(s) URL")
	}

	switch c.OtelExporter {
	case "none", "stdout", "otlp":
	default:
		errs = append(errs, "OTEL_EXPORTER must be one of none, stdout, otlp")
	}

	if c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, "LOG_FORMAT must be console or json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

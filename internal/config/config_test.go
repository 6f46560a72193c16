package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LEDGER_API_URL", "HTTP_TIMEOUT_SECONDS", "LOG_LEVEL", "LOG_FORMAT",
		"TOKEN_FILE", "OTEL_EXPORTER", "OTEL_ENDPOINT", "CHART_OUT_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, DefaultAPIURL, cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "none", cfg.OtelExporter)
		assert.Equal(t, ".", cfg.ChartOutDir)
		assert.NotEmpty(t, cfg.TokenFile)
		assert.True(t, strings.HasSuffix(cfg.TokenFile, "token"), "token file path: %s", cfg.TokenFile)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LEDGER_API_URL", "http://localhost:8000/")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("TOKEN_FILE", "/tmp/invierte-test-token")
		t.Setenv("OTEL_EXPORTER", "stdout")
		t.Setenv("CHART_OUT_DIR", "/tmp")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL, "trailing slash is trimmed")
		assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "/tmp/invierte-test-token", cfg.TokenFile)
		assert.Equal(t, "stdout", cfg.OtelExporter)
		assert.Equal(t, "/tmp", cfg.ChartOutDir)
	})

	t.Run("invalid timeout falls back to the default", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	})

	t.Run("collects all validation failures", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LEDGER_API_URL", "ftp://wrong")
		t.Setenv("OTEL_EXPORTER", "jaeger")
		t.Setenv("LOG_FORMAT", "xml")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LEDGER_API_URL must be an http(s) URL")
		assert.Contains(t, err.Error(), "OTEL_EXPORTER must be one of none, stdout, otlp")
		assert.Contains(t, err.Error(), "LOG_FORMAT must be console or json")
	})
}

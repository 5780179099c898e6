package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every setting so host variables do not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WEATHERAPI_API_KEY", "OPENWEATHER_API_KEY", "WEATHERAPI_BASE_URL",
		"HTTP_TIMEOUT", "CACHE_TTL", "PIN_REFRESH_INTERVAL",
		"SEARCH_HISTORY_LIMIT", "MAP_HISTORY_LIMIT", "MAP_MARKER_LIMIT",
		"LOG_LEVEL", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERAPI_API_KEY", "wk")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "wk", cfg.WeatherAPIKey)
	assert.Equal(t, "https://api.weatherapi.com/v1", cfg.WeatherAPIBaseURL)
	assert.Equal(t, 8*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.PinRefreshInterval)
	assert.Equal(t, 5, cfg.SearchHistoryLimit)
	assert.Equal(t, 20, cfg.MapHistoryLimit)
	assert.Equal(t, 10, cfg.MapMarkerLimit)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SEARCH_HISTORY_LIMIT", "8")
	t.Setenv("STORE_DSN", "")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.SearchHistoryLimit)
	assert.Empty(t, cfg.StoreDSN)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Run("duration", func(t *testing.T) {
		t.Setenv("HTTP_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("zero timeout", func(t *testing.T) {
		t.Setenv("HTTP_TIMEOUT", "0s")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "http")
		_, err := Load()
		assert.Error(t, err)
	})
}

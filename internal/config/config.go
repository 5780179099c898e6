package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type AppConfig struct {
	// WeatherAPIKey is checked when a lookup is made, not at load time, so
	// the server can start and report the missing key per request.
	WeatherAPIKey     string
	WeatherAPIBaseURL string `validate:"required,url"`
	OpenWeatherAPIKey string

	// HTTPTimeout bounds each upstream call.
	HTTPTimeout time.Duration `validate:"gt=0"`
	// CacheTTL is the freshness window of the response caches.
	CacheTTL time.Duration `validate:"gt=0"`

	SearchHistoryLimit int `validate:"min=1,max=100"`
	MapHistoryLimit    int `validate:"min=1,max=100"`
	MapMarkerLimit     int `validate:"min=1,max=100"`

	// PinRefreshInterval controls how often saved pins are re-fetched.
	PinRefreshInterval time.Duration `validate:"gte=0"`

	// StoreDSN is the SQLite database for history; empty keeps history in memory.
	StoreDSN string

	LogLevel string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Port     string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	if cfg.PinRefreshInterval, err = getenvDuration("PIN_REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.SearchHistoryLimit = getenvInt("SEARCH_HISTORY_LIMIT", 5)
	cfg.MapHistoryLimit = getenvInt("MAP_HISTORY_LIMIT", 20)
	cfg.MapMarkerLimit = getenvInt("MAP_MARKER_LIMIT", 10)

	cfg.StoreDSN = getenvDefault("STORE_DSN", "weather-lookup.db")
	if v, ok := os.LookupEnv("STORE_DSN"); ok && v == "" {
		cfg.StoreDSN = ""
	}

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

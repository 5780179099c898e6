package main

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/history"
	"github.com/i474232898/weather-lookup/internal/mapview"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// app holds the wired components shared by every command.
type app struct {
	cfg           *config.AppConfig
	service       *weather.Service
	searchHistory *history.Ledger[history.Entry]
	mapView       *mapview.Map
	bus           *mapview.Bus
	tiles         *providers.OpenWeatherTiles
	close         func() error
}

func newApp() (*app, error) {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	// History storage: SQLite when configured, memory otherwise.
	var (
		kv      history.KV
		closeKV = func() error { return nil }
	)
	if cfg.StoreDSN == "" {
		kv = store.NewMemoryStore()
	} else {
		sqlStore, err := store.OpenSQLite(cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		kv = sqlStore
		closeKV = sqlStore.Close
	}
	repo := history.NewJSONRepository(kv)

	// Shared HTTP client for outbound calls; the per-call deadline is
	// enforced by the provider.
	httpClient := &http.Client{}
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.WeatherAPIBaseURL, cfg.HTTPTimeout)

	service := weather.NewService(provider, cfg.CacheTTL)

	bus := mapview.NewBus()
	mapView := mapview.New(
		service,
		history.NewMapHistory(repo, cfg.MapHistoryLimit),
		history.NewPinLedger(repo, cfg.MapHistoryLimit),
		mapview.NewMarkerRegistry(cfg.MapMarkerLimit, bus),
		bus,
	)

	return &app{
		cfg:           cfg,
		service:       service,
		searchHistory: history.NewSearchHistory(repo, cfg.SearchHistoryLimit),
		mapView:       mapView,
		bus:           bus,
		tiles:         providers.NewOpenWeatherTiles(cfg.OpenWeatherAPIKey),
		close:         closeKV,
	}, nil
}

package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/weather-lookup/internal/cache"
)

// MaxForecastDays is the longest forecast the upstream plan serves.
const MaxForecastDays = 3

// Service orchestrates upstream lookups, caching and normalization.
//
// Concurrent lookups for the same key are not coalesced: each one that
// misses the cache calls the provider.
type Service struct {
	provider Provider
	current  *cache.ResponseCache[WeatherResult]
	forecast *cache.ResponseCache[ForecastResult]
	now      func() time.Time
}

// NewService creates a new Service with independent current and forecast
// caches that share the given TTL.
func NewService(provider Provider, ttl time.Duration) *Service {
	return &Service{
		provider: provider,
		current:  cache.New[WeatherResult]("current", ttl),
		forecast: cache.New[ForecastResult]("forecast", ttl),
		now:      time.Now,
	}
}

// Show returns the current conditions for a location.
func (s *Service) Show(ctx context.Context, q LocationQuery) (WeatherResult, error) {
	qs, err := q.Resolve()
	if err != nil {
		return WeatherResult{}, err
	}

	req := CurrentRequest(qs)
	key := req.Key()
	if cached, ok := s.current.Get(key); ok {
		log.WithFields(log.Fields{"query": qs, "cache": s.current.Name()}).Debug("cache hit")
		return cached.Clone(), nil
	}

	payload, err := s.provider.Current(ctx, req)
	if err != nil {
		return WeatherResult{}, fmt.Errorf("fetch current conditions for %q: %w", qs, err)
	}
	if err := payload.Err(); err != nil {
		return WeatherResult{}, err
	}

	now := s.now()
	date := AstronomyDate(payload.Location, now)

	var astro *Astronomy
	if a, err := s.lookupAstronomy(ctx, qs, date); err != nil {
		log.WithFields(log.Fields{
			"query": qs,
			"date":  date,
			"error": err,
		}).Warn("astronomy lookup failed; continuing without it")
	} else {
		astro = &a
	}

	result, err := Normalize(payload, astro, now)
	if err != nil {
		return WeatherResult{}, err
	}

	s.current.Set(key, result)
	return result.Clone(), nil
}

// Forecast returns a days-long forecast (1..MaxForecastDays) with alerts.
func (s *Service) Forecast(ctx context.Context, q LocationQuery, days int) (ForecastResult, error) {
	if days < 1 || days > MaxForecastDays {
		return ForecastResult{}, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidQuery, MaxForecastDays)
	}
	qs, err := q.Resolve()
	if err != nil {
		return ForecastResult{}, err
	}

	req := ForecastRequest(qs, days)
	key := req.Key()
	if cached, ok := s.forecast.Get(key); ok {
		log.WithFields(log.Fields{"query": qs, "cache": s.forecast.Name()}).Debug("cache hit")
		return cached.Clone(), nil
	}

	payload, err := s.provider.Forecast(ctx, req)
	if err != nil {
		return ForecastResult{}, fmt.Errorf("fetch forecast for %q: %w", qs, err)
	}

	result, err := NormalizeForecast(payload, s.now())
	if err != nil {
		return ForecastResult{}, err
	}

	s.forecast.Set(key, result)
	return result.Clone(), nil
}

// Astronomy returns the sun and moon times for a location and date. An empty
// date means today in process-local time, since the location's timezone is
// not known before the call. Unlike the lookup made by Show, errors
// are returned to the caller.
func (s *Service) Astronomy(ctx context.Context, q LocationQuery, date string) (Astronomy, error) {
	qs, err := q.Resolve()
	if err != nil {
		return Astronomy{}, err
	}
	if date == "" {
		date = s.now().In(time.Local).Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Astronomy{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidQuery, date)
	}
	return s.lookupAstronomy(ctx, qs, date)
}

// Search returns location suggestions. Blank input yields no suggestions
// without calling upstream.
func (s *Service) Search(ctx context.Context, text string) ([]SearchCandidate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []SearchCandidate{}, nil
	}
	candidates, err := s.provider.Search(ctx, SearchRequest(text))
	if err != nil {
		return nil, fmt.Errorf("search locations for %q: %w", text, err)
	}
	if candidates == nil {
		candidates = []SearchCandidate{}
	}
	return candidates, nil
}

// lookupAstronomy performs the astronomy call and reports its outcome
// explicitly; Show maps the error branch to a nil astronomy.
func (s *Service) lookupAstronomy(ctx context.Context, q, date string) (Astronomy, error) {
	payload, err := s.provider.Astronomy(ctx, AstronomyRequest(q, date))
	if err != nil {
		return Astronomy{}, err
	}
	if err := payload.Err(); err != nil {
		return Astronomy{}, err
	}
	return payload.Astronomy.Astro.Astronomy(), nil
}

package weather

import (
	"context"

	"github.com/i474232898/weather-lookup/internal/common"
)

// Upstream endpoint names, relative to the provider's base URL.
const (
	EndpointCurrent   = "current.json"
	EndpointForecast  = "forecast.json"
	EndpointAstronomy = "astronomy.json"
	EndpointSearch    = "search.json"
)

// Request describes an upstream call independently of the credentials the
// provider adds. Its Key is used to index response caches.
type Request struct {
	Endpoint string
	Params   map[string]any
}

// Key returns the endpoint with its sorted, encoded parameter set.
func (r Request) Key() string {
	return common.BuildURL(r.Endpoint, r.Params)
}

// CurrentRequest asks for current conditions including air quality.
func CurrentRequest(q string) Request {
	return Request{Endpoint: EndpointCurrent, Params: map[string]any{"q": q, "aqi": "yes"}}
}

// ForecastRequest asks for a days-long forecast with alerts.
func ForecastRequest(q string, days int) Request {
	return Request{Endpoint: EndpointForecast, Params: map[string]any{
		"q":      q,
		"days":   days,
		"aqi":    "yes",
		"alerts": "yes",
	}}
}

// AstronomyRequest asks for sun and moon times on date (YYYY-MM-DD).
func AstronomyRequest(q, date string) Request {
	return Request{Endpoint: EndpointAstronomy, Params: map[string]any{"q": q, "dt": date}}
}

// SearchRequest asks for location suggestions.
func SearchRequest(q string) Request {
	return Request{Endpoint: EndpointSearch, Params: map[string]any{"q": q}}
}

// Provider abstracts the upstream weather API.
type Provider interface {
	Name() string
	Current(ctx context.Context, req Request) (CurrentPayload, error)
	Forecast(ctx context.Context, req Request) (ForecastPayload, error)
	Astronomy(ctx context.Context, req Request) (AstronomyPayload, error)
	Search(ctx context.Context, req Request) ([]SearchCandidate, error)
}

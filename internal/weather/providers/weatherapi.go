package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultWeatherAPIBaseURL is the WeatherAPI.com v1 root.
const DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
}

// NewWeatherAPIProvider creates a provider. An empty baseURL selects
// DefaultWeatherAPIBaseURL and a non-positive timeout DefaultTimeout.
func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string, timeout time.Duration) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
		circuit: newBreaker("weatherapi-astronomy"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Current calls current.json.
func (p *WeatherAPIProvider) Current(ctx context.Context, req weather.Request) (weather.CurrentPayload, error) {
	var payload weather.CurrentPayload
	if err := p.get(ctx, req, &payload); err != nil {
		return weather.CurrentPayload{}, err
	}
	return payload, nil
}

// Forecast calls forecast.json.
func (p *WeatherAPIProvider) Forecast(ctx context.Context, req weather.Request) (weather.ForecastPayload, error) {
	var payload weather.ForecastPayload
	if err := p.get(ctx, req, &payload); err != nil {
		return weather.ForecastPayload{}, err
	}
	return payload, nil
}

// Astronomy calls astronomy.json behind a circuit breaker, so a failing
// endpoint is not hammered by every lookup.
func (p *WeatherAPIProvider) Astronomy(ctx context.Context, req weather.Request) (weather.AstronomyPayload, error) {
	result, err := p.circuit.Execute(func() (interface{}, error) {
		var payload weather.AstronomyPayload
		if err := p.get(ctx, req, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return weather.AstronomyPayload{}, &weather.NetworkError{Cause: fmt.Errorf("astronomy circuit open: %w", err)}
		}
		return weather.AstronomyPayload{}, err
	}

	payload, ok := result.(weather.AstronomyPayload)
	if !ok {
		return weather.AstronomyPayload{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return payload, nil
}

// Search calls search.json, which answers with a bare array.
func (p *WeatherAPIProvider) Search(ctx context.Context, req weather.Request) ([]weather.SearchCandidate, error) {
	var candidates []weather.SearchCandidate
	if err := p.get(ctx, req, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// get builds the authenticated URL, performs the call and decodes the body
// into out. Non-2xx answers become *weather.UpstreamError, using the
// upstream error block when one is present.
func (p *WeatherAPIProvider) get(ctx context.Context, req weather.Request, out any) error {
	if p.apiKey == "" {
		return &weather.ConfigurationError{Setting: "WEATHERAPI_API_KEY"}
	}

	base := fmt.Sprintf("%s/%s?key=%s", p.baseURL, req.Endpoint, url.QueryEscape(p.apiKey))
	u := common.BuildURL(base, req.Params)
	safeURL := redactURL(u)

	resp, err := FetchWithTimeout(ctx, p.client, u, http.Header{"Accept": {"application/json"}}, p.timeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := readBody(resp, safeURL, p.timeout)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error *weather.ErrorPayload `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			return &weather.UpstreamError{
				Code:    envelope.Error.Code,
				Status:  resp.StatusCode,
				Message: envelope.Error.Message,
			}
		}
		return &weather.UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, p.name),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &weather.NetworkError{URL: safeURL, Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

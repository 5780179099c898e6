package weather

import (
	"fmt"
	"strings"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// LocationQuery identifies a place either by free text (city name, postcode,
// IATA code...) or by a coordinate pair.
type LocationQuery struct {
	Text string   `json:"q,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// TextQuery returns a query for a free-text location.
func TextQuery(text string) LocationQuery {
	return LocationQuery{Text: text}
}

// CoordQuery returns a query for a coordinate pair.
func CoordQuery(lat, lng float64) LocationQuery {
	return LocationQuery{Lat: &lat, Lng: &lng}
}

// Resolve turns the query into the single string sent upstream as `q`.
// Coordinates win over text and are rounded to four decimals.
func (q LocationQuery) Resolve() (string, error) {
	if q.Lat != nil && q.Lng != nil {
		return fmt.Sprintf("%.4f,%.4f", *q.Lat, *q.Lng), nil
	}
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return "", ErrEmptyQuery
	}
	return text, nil
}

// Location is the canonical location block of a result.
type Location struct {
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Localtime  string  `json:"localtime"`
	TimezoneID string  `json:"timezone"`
}

// Key returns the identity key used by history ledgers.
func (l Location) Key() string {
	return l.Name
}

// Current holds the normalized current conditions.
type Current struct {
	TemperatureC float64   `json:"temperatureC"`
	FeelsLikeC   float64   `json:"feelsLikeC"`
	Condition    string    `json:"condition"`
	Category     Condition `json:"category"`
	Icon         string    `json:"icon"`
	HumidityPct  float64   `json:"humidityPercent"`
	WindKph      float64   `json:"windKph"`
	WindDir      string    `json:"windDir"`
	WindDegree   int       `json:"windDegree"`
	PressureMb   float64   `json:"pressureMb"`
	VisibilityKm float64   `json:"visibilityKm"`
	UV           float64   `json:"uv"`

	// Display fields derived from the values above.
	TemperatureF  float64 `json:"temperatureF"`
	WindMps       float64 `json:"windMps"`
	WindDirection string  `json:"windDirection"`
	Beaufort      int     `json:"beaufort"`
	UVBand        Band    `json:"uvBand"`
}

// Astronomy holds sun and moon times as reported upstream (12-hour clock).
type Astronomy struct {
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Moonrise  string `json:"moonrise"`
	Moonset   string `json:"moonset"`
	MoonPhase string `json:"moonPhase"`
}

// WeatherResult is the canonical result of a current-conditions lookup.
// IsDay is nil when day/night could not be determined.
type WeatherResult struct {
	Location   Location           `json:"location"`
	Current    Current            `json:"current"`
	IsDay      *bool              `json:"isDay"`
	Astronomy  *Astronomy         `json:"astronomy,omitempty"`
	AirQuality map[string]float64 `json:"airQuality,omitempty"`
	// AQIBand is set when the air quality block carries a US EPA index.
	AQIBand *Band `json:"aqiBand,omitempty"`
}

// Clone returns a deep copy so cached results are never shared with callers.
func (r WeatherResult) Clone() WeatherResult {
	out := r
	out.IsDay = cloneBool(r.IsDay)
	if r.Astronomy != nil {
		a := *r.Astronomy
		out.Astronomy = &a
	}
	out.AirQuality = cloneAirQuality(r.AirQuality)
	out.AQIBand = cloneBand(r.AQIBand)
	return out
}

// ForecastDay is a single day summary of a forecast.
type ForecastDay struct {
	Date         string    `json:"date"`
	MaxTempC     float64   `json:"maxTempC"`
	MinTempC     float64   `json:"minTempC"`
	Condition    string    `json:"condition"`
	Category     Condition `json:"category"`
	Icon         string    `json:"icon"`
	ChanceOfRain int       `json:"chanceOfRain"`
	MaxWindKph   float64   `json:"maxWindKph"`
	UV           float64   `json:"uv"`
	Astro        Astronomy `json:"astro"`
}

// Alert is a weather alert issued for the location.
type Alert struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Event       string `json:"event,omitempty"`
}

// ForecastResult is the canonical result of a forecast lookup.
// Forecast entries are ordered by date ascending.
type ForecastResult struct {
	Location   Location           `json:"location"`
	Current    Current            `json:"current"`
	IsDay      *bool              `json:"isDay"`
	AirQuality map[string]float64 `json:"airQuality,omitempty"`
	AQIBand    *Band              `json:"aqiBand,omitempty"`
	Forecast   []ForecastDay      `json:"forecast"`
	Alerts     []Alert            `json:"alerts"`
}

// Clone returns a deep copy of the forecast.
func (r ForecastResult) Clone() ForecastResult {
	out := r
	out.IsDay = cloneBool(r.IsDay)
	out.AirQuality = cloneAirQuality(r.AirQuality)
	out.AQIBand = cloneBand(r.AQIBand)
	out.Forecast = append(make([]ForecastDay, 0, len(r.Forecast)), r.Forecast...)
	out.Alerts = append(make([]Alert, 0, len(r.Alerts)), r.Alerts...)
	return out
}

// SearchCandidate is a location suggestion returned by the search endpoint.
type SearchCandidate struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	URL     string  `json:"url"`
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneBand(b *Band) *Band {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneAirQuality(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

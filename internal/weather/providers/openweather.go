package providers

import (
	"fmt"
	"net/url"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// TileLayer describes an OpenWeatherMap weather overlay for the map.
// URLTemplate keeps the {z}/{x}/{y} placeholders for the map library.
type TileLayer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Opacity     float64 `json:"opacity"`
	URLTemplate string  `json:"urlTemplate"`
}

var openWeatherLayers = []TileLayer{
	{ID: "precipitation_new", Name: "Precipitation", Opacity: 0.55},
	{ID: "clouds_new", Name: "Clouds", Opacity: 0.35},
	{ID: "temp_new", Name: "Temperature", Opacity: 0.4},
	{ID: "wind_new", Name: "Wind Speed", Opacity: 0.35},
}

// OpenWeatherTiles builds tile layer URLs for OpenWeatherMap.
type OpenWeatherTiles struct {
	name    string
	apiKey  string
	baseURL string
}

func NewOpenWeatherTiles(apiKey string) *OpenWeatherTiles {
	return &OpenWeatherTiles{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://tile.openweathermap.org/map",
	}
}

func (p *OpenWeatherTiles) Name() string {
	return p.name
}

// Layers returns every overlay with its authenticated URL template.
func (p *OpenWeatherTiles) Layers() ([]TileLayer, error) {
	if p.apiKey == "" {
		return nil, &weather.ConfigurationError{Setting: "OPENWEATHER_API_KEY"}
	}

	layers := make([]TileLayer, 0, len(openWeatherLayers))
	for _, l := range openWeatherLayers {
		l.URLTemplate = fmt.Sprintf("%s/%s/{z}/{x}/{y}.png?appid=%s", p.baseURL, l.ID, url.QueryEscape(p.apiKey))
		layers = append(layers, l)
	}
	return layers, nil
}

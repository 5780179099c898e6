package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestOpenWeatherTilesLayers(t *testing.T) {
	tiles := NewOpenWeatherTiles("owm-key")

	layers, err := tiles.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 4)

	assert.Equal(t, "precipitation_new", layers[0].ID)
	assert.Equal(t, 0.55, layers[0].Opacity)
	assert.Equal(t,
		"https://tile.openweathermap.org/map/precipitation_new/{z}/{x}/{y}.png?appid=owm-key",
		layers[0].URLTemplate)
	assert.Equal(t, "openweathermap", tiles.Name())
}

func TestOpenWeatherTilesRequireKey(t *testing.T) {
	_, err := NewOpenWeatherTiles("").Layers()
	assert.ErrorIs(t, err, weather.ErrConfiguration)
}

package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	assert.InDelta(t, 212.0, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, CelsiusToFahrenheit(-40), 1e-9)
	assert.InDelta(t, 10.0, KphToMps(36), 1e-9)
}

func TestFormatWindDirection(t *testing.T) {
	assert.Equal(t, "North-Northwest", FormatWindDirection("NNW"))
	assert.Equal(t, "East", FormatWindDirection(" e "))
	assert.Equal(t, "variable", FormatWindDirection("variable"))
}

func TestUVInfo(t *testing.T) {
	assert.Equal(t, "Low", UVInfo(0).Label)
	assert.Equal(t, "Moderate", UVInfo(3).Label)
	assert.Equal(t, "High", UVInfo(7.9).Label)
	assert.Equal(t, "Very High", UVInfo(10).Label)
	assert.Equal(t, "Extreme", UVInfo(11).Label)
}

func TestAQIInfo(t *testing.T) {
	band, ok := AQIInfo(1)
	assert.True(t, ok)
	assert.Equal(t, "Good", band.Label)

	band, ok = AQIInfo(6)
	assert.True(t, ok)
	assert.Equal(t, "Hazardous", band.Label)

	band, ok = AQIInfo(0)
	assert.False(t, ok)
	assert.Equal(t, "Unknown", band.Label)
}

func TestBeaufortIndex(t *testing.T) {
	assert.Equal(t, 0, BeaufortIndex(0))
	assert.Equal(t, 1, BeaufortIndex(3))
	assert.Equal(t, 3, BeaufortIndex(14.4))
	assert.Equal(t, 11, BeaufortIndex(117))
	assert.Equal(t, 12, BeaufortIndex(150))
}

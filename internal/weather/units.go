package weather

import "strings"

// CelsiusToFahrenheit converts a temperature from Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// KphToMps converts a speed from km/h to m/s.
func KphToMps(kph float64) float64 {
	return kph / 3.6
}

var compassNames = map[string]string{
	"N":   "North",
	"NNE": "North-Northeast",
	"NE":  "Northeast",
	"ENE": "East-Northeast",
	"E":   "East",
	"ESE": "East-Southeast",
	"SE":  "Southeast",
	"SSE": "South-Southeast",
	"S":   "South",
	"SSW": "South-Southwest",
	"SW":  "Southwest",
	"WSW": "West-Southwest",
	"W":   "West",
	"WNW": "West-Northwest",
	"NW":  "Northwest",
	"NNW": "North-Northwest",
}

// FormatWindDirection expands a 16-point compass abbreviation. Unknown values
// are returned unchanged.
func FormatWindDirection(dir string) string {
	if name, ok := compassNames[strings.ToUpper(strings.TrimSpace(dir))]; ok {
		return name
	}
	return dir
}

// Band is a labelled range used for UV and air quality display.
type Band struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// UVInfo returns the WHO exposure band for a UV index.
func UVInfo(uv float64) Band {
	switch {
	case uv < 3:
		return Band{Label: "Low", Color: "#22c55e"}
	case uv < 6:
		return Band{Label: "Moderate", Color: "#eab308"}
	case uv < 8:
		return Band{Label: "High", Color: "#f97316"}
	case uv < 11:
		return Band{Label: "Very High", Color: "#ef4444"}
	default:
		return Band{Label: "Extreme", Color: "#a855f7"}
	}
}

var aqiBands = []Band{
	{Label: "Good", Color: "#22c55e"},
	{Label: "Moderate", Color: "#eab308"},
	{Label: "Unhealthy for Sensitive Groups", Color: "#f97316"},
	{Label: "Unhealthy", Color: "#ef4444"},
	{Label: "Very Unhealthy", Color: "#a855f7"},
	{Label: "Hazardous", Color: "#7f1d1d"},
}

// AQIInfo returns the band for a US EPA index (1-6). The second value is
// false for indexes outside that range.
func AQIInfo(usEpaIndex int) (Band, bool) {
	if usEpaIndex < 1 || usEpaIndex > len(aqiBands) {
		return Band{Label: "Unknown", Color: "#64748b"}, false
	}
	return aqiBands[usEpaIndex-1], true
}

// beaufortKph are the upper bounds (km/h) of Beaufort forces 0 through 11.
var beaufortKph = []float64{1, 5, 11, 19, 28, 38, 49, 61, 74, 88, 102, 117}

// BeaufortIndex returns the Beaufort force (0-12) for a wind speed in km/h.
func BeaufortIndex(kph float64) int {
	for i, limit := range beaufortKph {
		if kph <= limit {
			return i
		}
	}
	return len(beaufortKph)
}

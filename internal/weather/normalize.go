package weather

import (
	"time"
)

// Normalize merges a current-conditions payload with optional astronomy
// data into a WeatherResult. Inputs are not modified.
func Normalize(current CurrentPayload, astro *Astronomy, now time.Time) (WeatherResult, error) {
	if err := current.Err(); err != nil {
		return WeatherResult{}, err
	}

	loc := normalizeLocation(current.Location)
	date := AstronomyDate(current.Location, now)

	result := WeatherResult{
		Location:   loc,
		Current:    normalizeCurrent(current.Current),
		IsDay:      ResolveIsDay(current.Current.IsDay, astro, loc.TimezoneID, date, now),
		AirQuality: cloneAirQuality(current.Current.AirQuality),
		AQIBand:    airQualityBand(current.Current.AirQuality),
	}
	if astro != nil {
		a := *astro
		result.Astronomy = &a
	}
	return result, nil
}

// NormalizeForecast converts a forecast payload. When the upstream day flag
// is missing, the astro times of the matching forecast day are used.
func NormalizeForecast(p ForecastPayload, now time.Time) (ForecastResult, error) {
	if err := p.CurrentPayload.Err(); err != nil {
		return ForecastResult{}, err
	}

	loc := normalizeLocation(p.Location)
	date := AstronomyDate(p.Location, now)

	result := ForecastResult{
		Location:   loc,
		Current:    normalizeCurrent(p.Current),
		AirQuality: cloneAirQuality(p.Current.AirQuality),
		AQIBand:    airQualityBand(p.Current.AirQuality),
		Forecast:   []ForecastDay{},
		Alerts:     []Alert{},
	}

	var todayAstro *Astronomy
	if p.Forecast != nil {
		for i, d := range p.Forecast.Forecastday {
			astro := d.Astro.Astronomy()
			if d.Date == date || (i == 0 && todayAstro == nil) {
				todayAstro = &astro
			}
			result.Forecast = append(result.Forecast, ForecastDay{
				Date:         d.Date,
				MaxTempC:     d.Day.MaxtempC,
				MinTempC:     d.Day.MintempC,
				Condition:    d.Day.Condition.Text,
				Category:     Classify(d.Day.Condition.Text),
				Icon:         apiIconURL(d.Day.Condition.Icon),
				ChanceOfRain: d.Day.DailyChanceOfRain,
				MaxWindKph:   d.Day.MaxwindKph,
				UV:           d.Day.UV,
				Astro:        astro,
			})
		}
	}
	if p.Alerts != nil {
		for _, a := range p.Alerts.Alert {
			result.Alerts = append(result.Alerts, Alert{
				Headline:    a.Headline,
				Description: a.Desc,
				Severity:    a.Severity,
				Event:       a.Event,
			})
		}
	}

	result.IsDay = ResolveIsDay(p.Current.IsDay, todayAstro, loc.TimezoneID, date, now)
	return result, nil
}

// Err reports the upstream error block, or a payload missing its data blocks.
func (p CurrentPayload) Err() error {
	if p.Error != nil {
		return upstreamErrorFrom(p.Error)
	}
	if p.Location == nil || p.Current == nil {
		return &UpstreamError{Message: "response is missing location or current conditions"}
	}
	return nil
}

// Err reports the upstream error block of an astronomy response.
func (p AstronomyPayload) Err() error {
	if p.Error != nil {
		return upstreamErrorFrom(p.Error)
	}
	if p.Astronomy == nil {
		return &UpstreamError{Message: "response is missing astronomy data"}
	}
	return nil
}

func normalizeLocation(l *LocationPayload) Location {
	return Location{
		Name:       l.Name,
		Region:     l.Region,
		Country:    l.Country,
		Lat:        l.Lat,
		Lon:        l.Lon,
		Localtime:  l.Localtime,
		TimezoneID: l.TzID,
	}
}

func normalizeCurrent(c *CurrentBlock) Current {
	return Current{
		TemperatureC: c.TempC,
		FeelsLikeC:   c.FeelslikeC,
		Condition:    c.Condition.Text,
		Category:     Classify(c.Condition.Text),
		Icon:         apiIconURL(c.Condition.Icon),
		HumidityPct:  c.Humidity,
		WindKph:      c.WindKph,
		WindDir:      c.WindDir,
		WindDegree:   c.WindDegree,
		PressureMb:   c.PressureMb,
		VisibilityKm: c.VisKm,
		UV:           c.UV,

		TemperatureF:  CelsiusToFahrenheit(c.TempC),
		WindMps:       KphToMps(c.WindKph),
		WindDirection: FormatWindDirection(c.WindDir),
		Beaufort:      BeaufortIndex(c.WindKph),
		UVBand:        UVInfo(c.UV),
	}
}

// airQualityBand returns the band for the "us-epa-index" entry, or nil when
// the index is missing or out of range.
func airQualityBand(aq map[string]float64) *Band {
	index, ok := aq["us-epa-index"]
	if !ok {
		return nil
	}
	band, ok := AQIInfo(int(index))
	if !ok {
		return nil
	}
	return &band
}

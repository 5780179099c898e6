package weather

// Payload types mirror the WeatherAPI.com JSON responses. Only the fields the
// normalizer reads are declared.

// ErrorPayload is the application error block returned instead of data.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LocationPayload is the `location` block shared by every endpoint.
type LocationPayload struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

// ConditionPayload is the `condition` block.
type ConditionPayload struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// CurrentBlock is the `current` block of the current and forecast endpoints.
type CurrentBlock struct {
	TempC      float64            `json:"temp_c"`
	IsDay      *int               `json:"is_day"`
	Condition  ConditionPayload   `json:"condition"`
	WindKph    float64            `json:"wind_kph"`
	WindDegree int                `json:"wind_degree"`
	WindDir    string             `json:"wind_dir"`
	PressureMb float64            `json:"pressure_mb"`
	PrecipMm   float64            `json:"precip_mm"`
	Humidity   float64            `json:"humidity"`
	Cloud      float64            `json:"cloud"`
	FeelslikeC float64            `json:"feelslike_c"`
	VisKm      float64            `json:"vis_km"`
	UV         float64            `json:"uv"`
	AirQuality map[string]float64 `json:"air_quality,omitempty"`
}

// CurrentPayload is the response of current.json.
type CurrentPayload struct {
	Location *LocationPayload `json:"location,omitempty"`
	Current  *CurrentBlock    `json:"current,omitempty"`
	Error    *ErrorPayload    `json:"error,omitempty"`
}

// AstroPayload is the `astro` block of the astronomy and forecast endpoints.
type AstroPayload struct {
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Moonrise  string `json:"moonrise"`
	Moonset   string `json:"moonset"`
	MoonPhase string `json:"moon_phase"`
}

// Astronomy converts the payload into the canonical astronomy record.
func (a AstroPayload) Astronomy() Astronomy {
	return Astronomy{
		Sunrise:   a.Sunrise,
		Sunset:    a.Sunset,
		Moonrise:  a.Moonrise,
		Moonset:   a.Moonset,
		MoonPhase: a.MoonPhase,
	}
}

// AstronomyPayload is the response of astronomy.json.
type AstronomyPayload struct {
	Location  *LocationPayload `json:"location,omitempty"`
	Astronomy *struct {
		Astro AstroPayload `json:"astro"`
	} `json:"astronomy,omitempty"`
	Error *ErrorPayload `json:"error,omitempty"`
}

// DayPayload is the `day` block of a forecast day.
type DayPayload struct {
	MaxtempC          float64          `json:"maxtemp_c"`
	MintempC          float64          `json:"mintemp_c"`
	AvgtempC          float64          `json:"avgtemp_c"`
	MaxwindKph        float64          `json:"maxwind_kph"`
	TotalprecipMm     float64          `json:"totalprecip_mm"`
	DailyChanceOfRain int              `json:"daily_chance_of_rain"`
	Condition         ConditionPayload `json:"condition"`
	UV                float64          `json:"uv"`
}

// ForecastDayPayload is one element of `forecast.forecastday`.
type ForecastDayPayload struct {
	Date  string       `json:"date"`
	Day   DayPayload   `json:"day"`
	Astro AstroPayload `json:"astro"`
}

// AlertPayload is one element of `alerts.alert`.
type AlertPayload struct {
	Headline string `json:"headline"`
	Severity string `json:"severity"`
	Event    string `json:"event"`
	Desc     string `json:"desc"`
}

// ForecastPayload is the response of forecast.json.
type ForecastPayload struct {
	CurrentPayload
	Forecast *struct {
		Forecastday []ForecastDayPayload `json:"forecastday"`
	} `json:"forecast,omitempty"`
	Alerts *struct {
		Alert []AlertPayload `json:"alert"`
	} `json:"alerts,omitempty"`
}

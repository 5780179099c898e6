package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const currentURL = "https://api.weatherapi.com/v1/current.json"

const manamaJSON = `{
  "location": {"name": "Manama", "region": "Capital", "country": "Bahrain",
    "lat": 26.23, "lon": 50.58, "tz_id": "Asia/Bahrain", "localtime": "2024-06-01 12:00"},
  "current": {"temp_c": 38.5, "is_day": 1, "wind_kph": 14.4, "wind_dir": "NNW",
    "humidity": 40, "feelslike_c": 41,
    "condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png", "code": 1000},
    "air_quality": {"us-epa-index": 2, "pm2_5": 31.5}}
}`

func newMockedProvider(t *testing.T, apiKey string) (*WeatherAPIProvider, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client := &http.Client{Transport: transport}
	return NewWeatherAPIProvider(client, apiKey, "", time.Second), transport
}

func TestWeatherAPICurrent(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, currentURL,
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "secret", q.Get("key"))
			assert.Equal(t, "Manama", q.Get("q"))
			assert.Equal(t, "yes", q.Get("aqi"))
			assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
			return httpmock.NewStringResponse(http.StatusOK, manamaJSON), nil
		})

	payload, err := p.Current(context.Background(), weather.CurrentRequest("Manama"))
	require.NoError(t, err)
	require.NoError(t, payload.Err())
	assert.Equal(t, "Manama", payload.Location.Name)
	assert.Equal(t, "Asia/Bahrain", payload.Location.TzID)
	require.NotNil(t, payload.Current.IsDay)
	assert.Equal(t, 1, *payload.Current.IsDay)
	assert.Equal(t, 31.5, payload.Current.AirQuality["pm2_5"])
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestWeatherAPIErrorBlock(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, currentURL,
		httpmock.NewStringResponder(http.StatusBadRequest,
			`{"error":{"code":1006,"message":"No matching location found."}}`))

	_, err := p.Current(context.Background(), weather.CurrentRequest("Atlantis"))
	require.Error(t, err)

	var upstream *weather.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "No matching location found.", upstream.Error())
	assert.Equal(t, 1006, upstream.Code)
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
}

func TestWeatherAPIUnexpectedStatus(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, currentURL,
		httpmock.NewStringResponder(http.StatusBadGateway, "<html>bad gateway</html>"))

	_, err := p.Current(context.Background(), weather.CurrentRequest("Manama"))
	assert.ErrorIs(t, err, weather.ErrUpstream)
	assert.Contains(t, err.Error(), "502")
}

func TestWeatherAPIMissingKey(t *testing.T) {
	p, transport := newMockedProvider(t, "")

	_, err := p.Current(context.Background(), weather.CurrentRequest("Manama"))
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrConfiguration)
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestWeatherAPITransportFailure(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, currentURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := p.Current(context.Background(), weather.CurrentRequest("Manama"))
	require.ErrorIs(t, err, weather.ErrNetwork)
	assert.NotContains(t, err.Error(), "secret")
}

func TestWeatherAPIMalformedBody(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, currentURL,
		httpmock.NewStringResponder(http.StatusOK, `{"location":`))

	_, err := p.Current(context.Background(), weather.CurrentRequest("Manama"))
	assert.ErrorIs(t, err, weather.ErrNetwork)
}

func TestWeatherAPIAstronomyAndSearch(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, "https://api.weatherapi.com/v1/astronomy.json",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "2024-06-01", req.URL.Query().Get("dt"))
			return httpmock.NewStringResponse(http.StatusOK,
				`{"astronomy":{"astro":{"sunrise":"04:44 AM","sunset":"06:27 PM","moon_phase":"Waning Crescent"}}}`), nil
		})
	transport.RegisterResponder(http.MethodGet, "https://api.weatherapi.com/v1/search.json",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id":2801268,"name":"London","region":"City of London, Greater London","country":"United Kingdom","lat":51.52,"lon":-0.11,"url":"london-city-of-london-greater-london-united-kingdom"}]`))

	astro, err := p.Astronomy(context.Background(), weather.AstronomyRequest("Manama", "2024-06-01"))
	require.NoError(t, err)
	require.NoError(t, astro.Err())
	assert.Equal(t, "06:27 PM", astro.Astronomy.Astro.Sunset)

	candidates, err := p.Search(context.Background(), weather.SearchRequest("Lond"))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(2801268), candidates[0].ID)
}

func TestWeatherAPIAstronomyBreakerIgnoresUpstreamErrors(t *testing.T) {
	p, transport := newMockedProvider(t, "secret")

	transport.RegisterResponder(http.MethodGet, "https://api.weatherapi.com/v1/astronomy.json",
		httpmock.NewStringResponder(http.StatusBadRequest,
			`{"error":{"code":1006,"message":"No matching location found."}}`))

	for i := 0; i < 10; i++ {
		_, err := p.Astronomy(context.Background(), weather.AstronomyRequest("Atlantis", "2024-06-01"))
		require.ErrorIs(t, err, weather.ErrUpstream)
	}
	assert.Equal(t, 10, transport.GetTotalCallCount())
}

func TestFetchWithTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := FetchWithTimeout(context.Background(), srv.Client(), srv.URL+"/current.json?key=secret", nil, 50*time.Millisecond)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var timeout *weather.TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, 50*time.Millisecond, timeout.After)
	assert.NotContains(t, timeout.URL, "secret")
	assert.ErrorIs(t, err, weather.ErrTimeout)
}

func TestFetchWithTimeoutHonoursCallerCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchWithTimeout(ctx, srv.Client(), srv.URL, nil, time.Second)
	assert.ErrorIs(t, err, weather.ErrNetwork)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t,
		"https://api.weatherapi.com/v1/current.json?key=REDACTED&q=Paris",
		redactURL("https://api.weatherapi.com/v1/current.json?key=abc&q=Paris"))
	assert.Equal(t,
		"https://tile.openweathermap.org/map/clouds_new/1/2/3.png?appid=REDACTED",
		redactURL("https://tile.openweathermap.org/map/clouds_new/1/2/3.png?appid=xyz"))
}

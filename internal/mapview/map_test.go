package mapview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/history"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// stubSource names each location after its query and fails for queries in
// failing.
type stubSource struct {
	mu      sync.Mutex
	calls   int
	names   map[string]string
	failing map[string]bool
}

func (s *stubSource) Show(_ context.Context, q weather.LocationQuery) (weather.WeatherResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	key, err := q.Resolve()
	if err != nil {
		return weather.WeatherResult{}, err
	}
	if s.failing[key] {
		return weather.WeatherResult{}, &weather.NetworkError{URL: key, Cause: errors.New("unreachable")}
	}
	name := key
	if n, ok := s.names[key]; ok {
		name = n
	}
	day := true
	return weather.WeatherResult{
		Location: weather.Location{Name: name},
		Current:  weather.Current{Condition: "Sunny", TemperatureC: 25},
		IsDay:    &day,
	}, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMap(t *testing.T, src WeatherSource, markerLimit int) (*Map, *clock, *store.MemoryStore, *Bus) {
	t.Helper()
	kv := store.NewMemoryStore()
	repo := history.NewJSONRepository(kv)
	bus := NewBus()

	m := New(src,
		history.NewMapHistory(repo, 20),
		history.NewPinLedger(repo, 20),
		NewMarkerRegistry(markerLimit, bus),
		bus,
	)
	c := &clock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m.now = c.now
	return m, c, kv, bus
}

func TestClickRecordsHistoryPinAndMarker(t *testing.T) {
	src := &stubSource{names: map[string]string{"48.8566,2.3522": "Paris"}}
	m, _, kv, _ := newTestMap(t, src, 10)

	marker, err := m.Click(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, "Paris", marker.LocationName)
	assert.Equal(t, "clear-day", marker.Icon)
	assert.NotEmpty(t, marker.ID)

	assert.Equal(t, []history.Entry{{Name: "Paris"}}, m.History())
	assert.Equal(t, []history.Pin{{Lat: 48.8566, Lng: 2.3522, LocationName: "Paris"}}, m.Pins())
	require.Len(t, m.Markers(), 1)

	raw, err := kv.Get(history.MapHistoryKey)
	require.NoError(t, err)
	assert.Equal(t, `["Paris"]`, raw)
}

func TestClickThrottle(t *testing.T) {
	src := &stubSource{}
	m, c, _, _ := newTestMap(t, src, 10)

	_, err := m.Click(context.Background(), 10, 10)
	require.NoError(t, err)

	// About 1.1 km away, one second later.
	c.advance(time.Second)
	_, err = m.Click(context.Background(), 10.01, 10)
	assert.ErrorIs(t, err, ErrThrottled)
	assert.Equal(t, 1, src.calls)

	// Far enough away.
	_, err = m.Click(context.Background(), 11, 10)
	require.NoError(t, err)

	// Same spot after the window has passed.
	c.advance(3 * time.Second)
	_, err = m.Click(context.Background(), 11, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}

func TestClickFailureLeavesStateUntouched(t *testing.T) {
	src := &stubSource{failing: map[string]bool{"1.0000,1.0000": true}}
	m, _, _, _ := newTestMap(t, src, 10)

	_, err := m.Click(context.Background(), 1, 1)
	assert.ErrorIs(t, err, weather.ErrNetwork)
	assert.Empty(t, m.History())
	assert.Empty(t, m.Pins())
	assert.Empty(t, m.Markers())
}

func TestMarkerLimitEvictsOldest(t *testing.T) {
	src := &stubSource{}
	m, c, _, _ := newTestMap(t, src, 3)

	for i := 0; i < 5; i++ {
		c.advance(4 * time.Second)
		_, err := m.Click(context.Background(), float64(i*10), 0)
		require.NoError(t, err)
	}

	markers := m.Markers()
	require.Len(t, markers, 3)
	assert.Equal(t, 20.0, markers[0].Lat)
	assert.Equal(t, 40.0, markers[2].Lat)
	assert.Len(t, m.History(), 5)
}

func TestRemoveHistoryRemovesPinsAndMarkers(t *testing.T) {
	src := &stubSource{names: map[string]string{
		"10.0000,10.0000": "Alpha",
		"20.0000,20.0000": "Bravo",
		"10.5000,10.5000": "Alpha",
	}}
	m, c, _, _ := newTestMap(t, src, 10)

	for _, p := range [][2]float64{{10, 10}, {20, 20}, {10.5, 10.5}} {
		c.advance(4 * time.Second)
		_, err := m.Click(context.Background(), p[0], p[1])
		require.NoError(t, err)
	}
	require.Equal(t, []history.Entry{{Name: "Alpha"}, {Name: "Bravo"}}, m.History())
	require.Len(t, m.Pins(), 3)

	got, err := m.RemoveHistory(0)
	require.NoError(t, err)
	assert.Equal(t, []history.Entry{{Name: "Bravo"}}, got)

	pins := m.Pins()
	require.Len(t, pins, 1)
	assert.Equal(t, "Bravo", pins[0].LocationName)

	markers := m.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, "Bravo", markers[0].LocationName)
}

func TestRemoveHistoryOutOfRange(t *testing.T) {
	m, _, _, _ := newTestMap(t, &stubSource{}, 10)
	_, err := m.Click(context.Background(), 1, 1)
	require.NoError(t, err)

	got, err := m.RemoveHistory(3)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Len(t, m.Pins(), 1)
}

func TestClearHistory(t *testing.T) {
	m, _, _, bus := newTestMap(t, &stubSource{}, 10)

	var removed int
	bus.Subscribe(EventMarkerRemoved, func(Event) { removed++ })

	_, err := m.Click(context.Background(), 1, 1)
	require.NoError(t, err)

	require.NoError(t, m.ClearHistory())
	assert.Empty(t, m.History())
	assert.Empty(t, m.Pins())
	assert.Empty(t, m.Markers())
	assert.Equal(t, 1, removed)
}

func TestShowDetailsAndDrawerPublish(t *testing.T) {
	m, _, _, bus := newTestMap(t, &stubSource{}, 10)

	var got []Event
	bus.Subscribe(EventDetailRequested, func(e Event) { got = append(got, e) })
	bus.Subscribe(EventDrawerRequested, func(e Event) { got = append(got, e) })

	_, err := m.ShowDetails("Lisbon")
	require.NoError(t, err)
	hist, err := m.OpenDrawer("Porto")
	require.NoError(t, err)

	assert.Equal(t, []history.Entry{{Name: "Porto"}, {Name: "Lisbon"}}, hist)
	require.Len(t, got, 2)
	assert.Equal(t, Event{Kind: EventDetailRequested, LocationName: "Lisbon"}, got[0])
	assert.Equal(t, Event{Kind: EventDrawerRequested, LocationName: "Porto"}, got[1])
}

func TestRestorePins(t *testing.T) {
	src := &stubSource{}
	m, c, _, _ := newTestMap(t, src, 10)

	for i := 1; i <= 3; i++ {
		c.advance(4 * time.Second)
		_, err := m.Click(context.Background(), float64(i), float64(i))
		require.NoError(t, err)
	}
	before := m.History()

	// A fresh map over the same storage starts without markers.
	m.markers.Clear()
	src.failing = map[string]bool{fmt.Sprintf("%.4f,%.4f", 2.0, 2.0): true}

	restored, err := m.RestorePins(context.Background())
	assert.Equal(t, 2, restored)
	assert.ErrorIs(t, err, weather.ErrNetwork)
	assert.Len(t, m.Markers(), 2)
	assert.Equal(t, before, m.History())
}

func TestRestorePinsStopsOnCancel(t *testing.T) {
	src := &stubSource{}
	m, _, _, _ := newTestMap(t, src, 10)
	_, err := m.Click(context.Background(), 1, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	restored, err := m.RestorePins(ctx)
	assert.Equal(t, 0, restored)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, src.calls)
}

func TestRestorePinsKeepsNewestWithinMarkerLimit(t *testing.T) {
	src := &stubSource{}
	m, c, _, _ := newTestMap(t, src, 2)

	for i := 1; i <= 4; i++ {
		c.advance(4 * time.Second)
		_, err := m.Click(context.Background(), float64(i*10), 0)
		require.NoError(t, err)
	}
	m.markers.Clear()

	restored, err := m.RestorePins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, restored)

	markers := m.Markers()
	require.Len(t, markers, 2)
	assert.Equal(t, 30.0, markers[0].Lat)
	assert.Equal(t, 40.0, markers[1].Lat)
}

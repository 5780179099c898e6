// Package mapview coordinates map clicks with the map history, the saved
// pins and the on-map markers so the three stay in lockstep.
package mapview

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/weather-lookup/internal/history"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// ErrThrottled is returned for a click too close in space and time to the
// previous fetched click.
var ErrThrottled = errors.New("click ignored: too close to the previous one")

const (
	throttleDistanceKm = 5.0
	throttleWindow     = 3 * time.Second
	kmPerDegree        = 111.0
)

// WeatherSource looks up current conditions.
type WeatherSource interface {
	Show(ctx context.Context, q weather.LocationQuery) (weather.WeatherResult, error)
}

type lastClick struct {
	lat, lng float64
	at       time.Time
	set      bool
}

// Map owns the map-surface state: click history, saved pins and markers.
type Map struct {
	source  WeatherSource
	history *history.Ledger[history.Entry]
	pins    *history.Ledger[history.Pin]
	markers *MarkerRegistry
	bus     *Bus
	now     func() time.Time

	mu   sync.Mutex
	last lastClick
}

// New creates a Map.
func New(source WeatherSource, hist *history.Ledger[history.Entry], pins *history.Ledger[history.Pin], markers *MarkerRegistry, bus *Bus) *Map {
	return &Map{
		source:  source,
		history: hist,
		pins:    pins,
		markers: markers,
		bus:     bus,
		now:     time.Now,
	}
}

// Click fetches the weather at a coordinate, drops a marker there and
// records the location in the history and saved pins.
//
// Concurrent clicks are not ordered: whichever lookup finishes last is
// recorded last.
func (m *Map) Click(ctx context.Context, lat, lng float64) (Marker, error) {
	if !m.admit(lat, lng) {
		return Marker{}, ErrThrottled
	}

	result, err := m.source.Show(ctx, weather.CoordQuery(lat, lng))
	if err != nil {
		return Marker{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := result.Location.Name
	marker := m.markers.Add(newMarker(lat, lng, result))

	if _, err := m.history.Record(history.Entry{Name: name}); err != nil {
		return marker, err
	}
	if _, err := m.pins.Record(history.Pin{Lat: lat, Lng: lng, LocationName: name}); err != nil {
		return marker, err
	}
	return marker, nil
}

// admit applies the click throttle and remembers the admitted click.
func (m *Map) admit(lat, lng float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.last.set {
		distance := math.Hypot(lat-m.last.lat, lng-m.last.lng) * kmPerDegree
		if distance < throttleDistanceKm && now.Sub(m.last.at) < throttleWindow {
			return false
		}
	}
	m.last = lastClick{lat: lat, lng: lng, at: now, set: true}
	return true
}

// RemoveHistory drops the history entry at index together with every saved
// pin and marker for the same location. Out-of-range indexes are a no-op.
func (m *Map) RemoveHistory(index int) ([]history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.history.At(index)
	if !ok {
		return m.history.List(), nil
	}

	next, err := m.history.Remove(index)
	if err != nil {
		return next, err
	}
	if _, err := m.pins.RemoveMatching(func(p history.Pin) bool {
		return p.LocationName == entry.Name
	}); err != nil {
		return next, err
	}
	m.markers.RemoveByName(entry.Name)
	return next, nil
}

// ClearHistory empties the history, the saved pins and the markers.
func (m *Map) ClearHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers.Clear()
	_, histErr := m.history.Clear()
	_, pinErr := m.pins.Clear()
	return errors.Join(histErr, pinErr)
}

// ShowDetails records the location and asks the UI for its detail view.
func (m *Map) ShowDetails(name string) ([]history.Entry, error) {
	return m.request(EventDetailRequested, name)
}

// OpenDrawer records the location and asks the UI for its drawer.
func (m *Map) OpenDrawer(name string) ([]history.Entry, error) {
	return m.request(EventDrawerRequested, name)
}

func (m *Map) request(kind EventKind, name string) ([]history.Entry, error) {
	m.mu.Lock()
	next, err := m.history.Record(history.Entry{Name: name})
	m.mu.Unlock()
	if err != nil {
		return next, err
	}
	if m.bus != nil {
		m.bus.Publish(Event{Kind: kind, LocationName: name})
	}
	return next, nil
}

// RestorePins re-fetches every saved pin and refreshes its marker. Pins are
// replayed oldest first so the newest ones survive the marker limit. The
// history and pin order are left untouched. Failed pins are skipped.
func (m *Map) RestorePins(ctx context.Context) (int, error) {
	var (
		restored int
		errs     []error
	)
	pins := m.pins.List()
	for i := len(pins) - 1; i >= 0; i-- {
		pin := pins[i]
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		result, err := m.source.Show(ctx, weather.CoordQuery(pin.Lat, pin.Lng))
		if err != nil {
			log.WithFields(log.Fields{
				"lat":      pin.Lat,
				"lng":      pin.Lng,
				"location": pin.LocationName,
				"error":    err,
			}).Warn("failed to restore saved pin")
			errs = append(errs, err)
			continue
		}
		m.markers.Add(newMarker(pin.Lat, pin.Lng, result))
		restored++
	}
	return restored, errors.Join(errs...)
}

// History returns the map click history, most recent first.
func (m *Map) History() []history.Entry { return m.history.List() }

// Pins returns the saved pins, most recent first.
func (m *Map) Pins() []history.Pin { return m.pins.List() }

// Markers returns the markers on the map, oldest first.
func (m *Map) Markers() []Marker { return m.markers.List() }

func newMarker(lat, lng float64, result weather.WeatherResult) Marker {
	return Marker{
		Lat:          lat,
		Lng:          lng,
		LocationName: result.Location.Name,
		Icon:         weather.IconFor(result.Current.Condition, result.IsDay),
		Weather:      result,
	}
}

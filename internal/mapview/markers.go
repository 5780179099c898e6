package mapview

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultMarkerLimit is how many markers stay on the map at once.
const DefaultMarkerLimit = 10

// Marker is a weather pin shown on the map.
type Marker struct {
	ID           uuid.UUID             `json:"id"`
	Lat          float64               `json:"lat"`
	Lng          float64               `json:"lng"`
	LocationName string                `json:"locationName"`
	Icon         string                `json:"icon"`
	Weather      weather.WeatherResult `json:"weather"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// MarkerRegistry holds the markers currently on the map, oldest first.
// Adding beyond the limit evicts the oldest marker.
type MarkerRegistry struct {
	mu      sync.Mutex
	limit   int
	markers []Marker
	bus     *Bus
}

// NewMarkerRegistry creates a registry publishing add/remove events on bus.
func NewMarkerRegistry(limit int, bus *Bus) *MarkerRegistry {
	if limit <= 0 {
		limit = DefaultMarkerLimit
	}
	return &MarkerRegistry{limit: limit, bus: bus}
}

// Add places a marker, replacing any marker at the same coordinates.
func (r *MarkerRegistry) Add(m Marker) Marker {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	var removed []Marker
	kept := r.markers[:0:0]
	for _, existing := range r.markers {
		if existing.Lat == m.Lat && existing.Lng == m.Lng {
			removed = append(removed, existing)
			continue
		}
		kept = append(kept, existing)
	}
	kept = append(kept, m)
	for len(kept) > r.limit {
		removed = append(removed, kept[0])
		kept = kept[1:]
	}
	r.markers = kept
	r.mu.Unlock()

	for i := range removed {
		r.publish(EventMarkerRemoved, removed[i])
	}
	r.publish(EventMarkerAdded, m)
	return m
}

// RemoveByName removes every marker for the location and returns them.
func (r *MarkerRegistry) RemoveByName(name string) []Marker {
	r.mu.Lock()
	var removed []Marker
	kept := r.markers[:0:0]
	for _, existing := range r.markers {
		if existing.LocationName == name {
			removed = append(removed, existing)
			continue
		}
		kept = append(kept, existing)
	}
	r.markers = kept
	r.mu.Unlock()

	for i := range removed {
		r.publish(EventMarkerRemoved, removed[i])
	}
	return removed
}

// Clear removes every marker.
func (r *MarkerRegistry) Clear() []Marker {
	r.mu.Lock()
	removed := r.markers
	r.markers = nil
	r.mu.Unlock()

	for i := range removed {
		r.publish(EventMarkerRemoved, removed[i])
	}
	return removed
}

// List returns a copy of the markers, oldest first.
func (r *MarkerRegistry) List() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Marker{}, r.markers...)
}

func (r *MarkerRegistry) publish(kind EventKind, m Marker) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(Event{Kind: kind, Marker: &m})
}

package mapview

import "sync"

// EventKind names a map event.
type EventKind string

const (
	EventMarkerAdded     EventKind = "marker_added"
	EventMarkerRemoved   EventKind = "marker_removed"
	EventDetailRequested EventKind = "detail_requested"
	EventDrawerRequested EventKind = "drawer_requested"
)

// Event is delivered to subscribers. Marker is set for marker events,
// LocationName for detail and drawer requests.
type Event struct {
	Kind         EventKind `json:"kind"`
	Marker       *Marker   `json:"marker,omitempty"`
	LocationName string    `json:"locationName,omitempty"`
}

// Handler receives events synchronously on the publishing goroutine. It
// must not call back into the Map that published the event.
type Handler func(Event)

// Bus is a small publish/subscribe registry that lets the map renderer and
// application code call each other without shared globals.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventKind]map[int]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind]map[int]Handler)}
}

// Subscribe registers h for kind and returns a function that removes it.
func (b *Bus) Subscribe(kind EventKind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.handlers[kind] == nil {
		b.handlers[kind] = make(map[int]Handler)
	}
	b.handlers[kind][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[kind], id)
	}
}

// Publish delivers e to every handler subscribed to its kind.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[e.Kind]))
	for _, h := range b.handlers[e.Kind] {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

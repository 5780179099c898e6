// Package history keeps the bounded, most-recent-first location lists
// (search history, map click history, saved pins) and persists every change.
package history

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Default capacities of the history surfaces.
const (
	DefaultSearchCapacity = 5
	DefaultMapCapacity    = 20
)

// Record returns a new list with item at the front, any previous item with
// the same identity removed, truncated to capacity. list is not modified.
func Record[T any](list []T, item T, capacity int, same func(a, b T) bool) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	for _, existing := range list {
		if !same(existing, item) {
			out = append(out, existing)
		}
	}
	if capacity > 0 && len(out) > capacity {
		out = out[:capacity]
	}
	return out
}

// Remove returns a new list without the element at index. An out-of-range
// index returns an unchanged copy.
func Remove[T any](list []T, index int) []T {
	out := make([]T, 0, len(list))
	for i, existing := range list {
		if i != index {
			out = append(out, existing)
		}
	}
	return out
}

// RemoveMatching returns a new list without the elements matching pred.
func RemoveMatching[T any](list []T, pred func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, existing := range list {
		if !pred(existing) {
			out = append(out, existing)
		}
	}
	return out
}

// Ledger is a persisted history list. Every mutation is written to the
// repository before the method returns; a mutation whose write fails is
// discarded.
type Ledger[T any] struct {
	key      string
	capacity int
	same     func(a, b T) bool
	repo     Repository

	mu    sync.Mutex
	items []T
}

// NewLedger creates a ledger seeded from the repository. Missing or
// unreadable stored data starts the ledger empty.
func NewLedger[T any](key string, capacity int, same func(a, b T) bool, repo Repository) *Ledger[T] {
	l := &Ledger[T]{
		key:      key,
		capacity: capacity,
		same:     same,
		repo:     repo,
	}
	l.items = l.restore()
	return l
}

// NewSearchHistory creates the search-history ledger.
func NewSearchHistory(repo Repository, capacity int) *Ledger[Entry] {
	if capacity <= 0 {
		capacity = DefaultSearchCapacity
	}
	return NewLedger(SearchHistoryKey, capacity, SameEntry, repo)
}

// NewMapHistory creates the map-click history ledger.
func NewMapHistory(repo Repository, capacity int) *Ledger[Entry] {
	if capacity <= 0 {
		capacity = DefaultMapCapacity
	}
	return NewLedger(MapHistoryKey, capacity, SameEntry, repo)
}

// NewPinLedger creates the saved-pins ledger.
func NewPinLedger(repo Repository, capacity int) *Ledger[Pin] {
	if capacity <= 0 {
		capacity = DefaultMapCapacity
	}
	return NewLedger(SavedPinsKey, capacity, SamePin, repo)
}

func (l *Ledger[T]) restore() []T {
	var stored []T
	if err := l.repo.Load(l.key, &stored); err != nil {
		log.WithFields(log.Fields{"key": l.key, "error": err}).Warn("ignoring unreadable history")
		return []T{}
	}

	// Re-record oldest first so duplicates and overflow from older
	// versions are dropped the same way live updates drop them.
	items := []T{}
	for i := len(stored) - 1; i >= 0; i-- {
		items = Record(items, stored[i], l.capacity, l.same)
	}
	return items
}

// Key returns the storage key.
func (l *Ledger[T]) Key() string { return l.key }

// Capacity returns the maximum number of entries.
func (l *Ledger[T]) Capacity() int { return l.capacity }

// List returns a copy of the entries, most recent first.
func (l *Ledger[T]) List() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]T{}, l.items...)
}

// Record moves item to the front of the list and persists the result.
func (l *Ledger[T]) Record(item T) ([]T, error) {
	return l.update(func(items []T) []T {
		return Record(items, item, l.capacity, l.same)
	})
}

// Remove drops the entry at index and persists the result. An out-of-range
// index leaves the list unchanged.
func (l *Ledger[T]) Remove(index int) ([]T, error) {
	return l.update(func(items []T) []T {
		return Remove(items, index)
	})
}

// RemoveMatching drops every entry matching pred and persists the result.
func (l *Ledger[T]) RemoveMatching(pred func(T) bool) ([]T, error) {
	return l.update(func(items []T) []T {
		return RemoveMatching(items, pred)
	})
}

// At returns the entry at index.
func (l *Ledger[T]) At(index int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if index < 0 || index >= len(l.items) {
		return zero, false
	}
	return l.items[index], true
}

// Clear empties the list and persists the result.
func (l *Ledger[T]) Clear() ([]T, error) {
	return l.update(func([]T) []T {
		return []T{}
	})
}

// update applies fn and keeps the result only once it is persisted, so the
// in-memory list never runs ahead of storage. On failure the unchanged list
// is returned with the error.
func (l *Ledger[T]) update(fn func([]T) []T) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := fn(l.items)
	if err := l.repo.Save(l.key, next); err != nil {
		log.WithFields(log.Fields{"key": l.key, "error": err}).Error("failed to persist history")
		return append([]T{}, l.items...), fmt.Errorf("persist %s: %w", l.key, err)
	}
	l.items = next
	return append([]T{}, next...), nil
}

package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Storage keys, one per history surface.
const (
	SearchHistoryKey = "searchHistory"
	MapHistoryKey    = "mapClickHistory"
	SavedPinsKey     = "weatherSavedPins"
)

// KV is the key-value backend a repository persists to.
// Get must return store.ErrNotFound for missing keys.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Repository loads and saves documents by key.
type Repository interface {
	Load(key string, dst any) error
	Save(key string, v any) error
}

// JSONRepository stores documents as JSON strings in a KV backend.
type JSONRepository struct {
	kv KV
}

// NewJSONRepository creates a repository over kv.
func NewJSONRepository(kv KV) *JSONRepository {
	return &JSONRepository{kv: kv}
}

// Load decodes the document under key into dst. A missing key leaves dst
// untouched and is not an error; undecodable data yields a
// *weather.StorageParseError.
func (r *JSONRepository) Load(key string, dst any) error {
	raw, err := r.kv.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &weather.StorageParseError{Key: key, Cause: err}
	}
	return nil
}

// Save encodes v and stores it under key.
func (r *JSONRepository) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := r.kv.Set(key, string(b)); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

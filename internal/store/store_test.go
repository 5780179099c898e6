package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kv is the contract shared by every backend.
type kv interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

func backends(t *testing.T) map[string]kv {
	t.Helper()
	sqlStore, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlStore.Close() })

	return map[string]kv{
		"memory": NewMemoryStore(),
		"sqlite": sqlStore,
	}
}

func TestStores(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("searchHistory")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set("searchHistory", `["Paris"]`))
			v, err := s.Get("searchHistory")
			require.NoError(t, err)
			assert.Equal(t, `["Paris"]`, v)

			require.NoError(t, s.Set("searchHistory", `["London","Paris"]`))
			v, err = s.Get("searchHistory")
			require.NoError(t, err)
			assert.Equal(t, `["London","Paris"]`, v)

			require.NoError(t, s.Delete("searchHistory"))
			_, err = s.Get("searchHistory")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete("never-set"))
		})
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", "1"))
			require.NoError(t, s.Set("b", "2"))

			a, err := s.Get("a")
			require.NoError(t, err)
			b, err := s.Get("b")
			require.NoError(t, err)
			assert.Equal(t, "1", a)
			assert.Equal(t, "2", b)
		})
	}
}

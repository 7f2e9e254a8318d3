package storage

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	coinsKey          = "coins"
	favouriteCoinsKey = "favourite_coins"
	favouriteIDsKey   = "favourite_ids"

	memoryCleanupInterval = 10 * time.Minute
)

// MemoryStore implements the cache interfaces on an in-process TTL cache.
// It backs the application when no database DSN is configured and the
// repository tests. Snapshot values are stored whole, so a replace is a
// single Set; the favourite id set needs the mutex for its
// read-modify-write.
type MemoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

// NewMemoryStore constructs a MemoryStore. A non-positive ttl keeps
// entries until the next replace.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryStore{cache: gocache.New(ttl, memoryCleanupInterval)}
}

// ReplaceCoins swaps the cached coins snapshot.
func (m *MemoryStore) ReplaceCoins(_ context.Context, rows []CoinRow) error {
	m.cache.Set(coinsKey, cloneRows(rows), gocache.DefaultExpiration)
	return nil
}

// ListCoins returns the cached coins snapshot.
func (m *MemoryStore) ListCoins(_ context.Context) ([]CoinRow, error) {
	return m.snapshot(coinsKey), nil
}

// ReplaceFavouriteCoins swaps the cached favourite snapshot.
func (m *MemoryStore) ReplaceFavouriteCoins(_ context.Context, rows []CoinRow) error {
	m.cache.Set(favouriteCoinsKey, cloneRows(rows), gocache.DefaultExpiration)
	return nil
}

// ListFavouriteCoins returns the cached favourite snapshot.
func (m *MemoryStore) ListFavouriteCoins(_ context.Context) ([]CoinRow, error) {
	return m.snapshot(favouriteCoinsKey), nil
}

// AddFavourite records membership for id.
func (m *MemoryStore) AddFavourite(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.idSet()
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	m.cache.Set(favouriteIDsKey, append(ids, id), gocache.NoExpiration)
	return nil
}

// RemoveFavourite deletes membership for id.
func (m *MemoryStore) RemoveFavourite(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.idSet()
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	m.cache.Set(favouriteIDsKey, kept, gocache.NoExpiration)
	return nil
}

// IsFavourite reports membership for id.
func (m *MemoryStore) IsFavourite(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.idSet() {
		if existing == id {
			return true, nil
		}
	}
	return false, nil
}

// ListFavouriteIDs returns all favourite ids in insertion order.
func (m *MemoryStore) ListFavouriteIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.idSet()
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (m *MemoryStore) snapshot(key string) []CoinRow {
	value, ok := m.cache.Get(key)
	if !ok {
		return []CoinRow{}
	}
	rows, ok := value.([]CoinRow)
	if !ok {
		return []CoinRow{}
	}
	return cloneRows(rows)
}

func (m *MemoryStore) idSet() []string {
	value, ok := m.cache.Get(favouriteIDsKey)
	if !ok {
		return []string{}
	}
	ids, ok := value.([]string)
	if !ok {
		return []string{}
	}
	return ids
}

func cloneRows(rows []CoinRow) []CoinRow {
	out := make([]CoinRow, len(rows))
	copy(out, rows)
	return out
}

var (
	_ CoinCache      = (*MemoryStore)(nil)
	_ FavouriteCache = (*MemoryStore)(nil)
	_ CoinCache      = (*Store)(nil)
	_ FavouriteCache = (*Store)(nil)
)

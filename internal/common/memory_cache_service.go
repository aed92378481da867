package common

import (
	"context"
	"encoding/json"
	"time"

	"campus-hub/agora/internal/logging"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process Cache implementation, used for local
// development and tests. Values are kept as JSON bytes so behavior matches
// the Redis implementation, including serialization failures.
type MemoryCache struct {
	cache *gocache.Cache
}

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, time.Minute),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	val, found := m.cache.Get(key)
	if !found {
		return nil, false
	}

	data, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return data, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) bool {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("memory cache: marshal failed", "key", key, "error", err.Error())
		return false
	}

	m.cache.Set(key, data, ttl)
	return true
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		m.cache.Delete(key)
	}
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.cache.Flush()
	return nil
}

// Close closes the cache (no-op for in-memory cache)
func (m *MemoryCache) Close() error {
	return nil
}

package common

import (
	"context"
	"encoding/json"
	"time"
)

// Cache defines the contract for the shared key-value cache store.
//
// Values are JSON-serialized. Every operation degrades to a neutral result
// (miss on read, false on write) when the store is unavailable: the cache is
// an optimization, never a source of truth.
type Cache interface {
	// Get retrieves the raw JSON bytes stored under key.
	// Returns nil and false on miss or store failure.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the given TTL.
	// Returns false when the value could not be stored.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string)

	// Clear removes every key in the store (use with caution)
	Clear(ctx context.Context) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// GetJSON retrieves the value stored under key and unmarshals it into T.
// A payload that fails to unmarshal is treated as a miss.
func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, bool) {
	data, ok := c.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return &out, true
}

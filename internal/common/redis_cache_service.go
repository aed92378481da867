package common

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"campus-hub/agora/internal/logging"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on top of a shared Redis instance
type RedisCache struct {
	client *redis.Client
}

// Ensure RedisCache implements Cache
var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a Redis-backed cache from environment configuration.
// A ping failure is returned so the caller can fall back to the in-memory
// cache, but the client itself stays usable: the pool reconnects on its own.
func NewRedisCache() (*RedisCache, error) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}

	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	// No password by default for local development

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	cache := &RedisCache{client: client}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return cache, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return cache, nil
}

// NewRedisCacheWithClient wraps an existing Redis client (used by tests)
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves the raw bytes stored under key
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logging.Warn("redis cache: get failed", "key", key, "error", err.Error())
		return nil, false
	}
	return data, true
}

// Set stores value under key with the given TTL
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("redis cache: marshal failed", "key", key, "error", err.Error())
		return false
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logging.Warn("redis cache: set failed", "key", key, "error", err.Error())
		return false
	}
	return true
}

// Delete removes the given keys
func (r *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		logging.Warn("redis cache: delete failed", "keys", keys, "error", err.Error())
	}
}

// Clear removes every key in the current Redis database
func (r *RedisCache) Clear(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// TTL returns the remaining time to live of a key
func (r *RedisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}

// Keys returns all keys matching a pattern
func (r *RedisCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	return r.client.Keys(ctx, pattern).Result()
}

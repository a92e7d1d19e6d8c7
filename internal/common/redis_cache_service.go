package common

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"stellar-experiment/admiralty/internal/logging"
)

// RedisCacheService implements CacheInterface on top of Redis. Values are
// stored as JSON; Get returns the raw JSON string so callers can decode
// into their own types.
type RedisCacheService struct {
	client *redis.Client
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService connects to Redis at addr and verifies the
// connection before returning.
func NewRedisCacheService(addr, password string, db int) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCacheService{client: client}, nil
}

// Set serializes value to JSON and stores it under key
func (r *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Redis cache: marshal failed", "key", key, "error", err)
		return
	}

	if err := r.client.Set(context.Background(), key, data, duration).Err(); err != nil {
		logging.Warn("Redis cache: set failed", "key", key, "error", err)
	}
}

// Get returns the stored JSON as a string. Decoding into a concrete type
// is left to the caller.
func (r *RedisCacheService) Get(key string) (interface{}, bool) {
	data, err := r.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis cache: get failed", "key", key, "error", err)
		return nil, false
	}

	return data, true
}

// Delete removes a key
func (r *RedisCacheService) Delete(key string) {
	if err := r.client.Del(context.Background(), key).Err(); err != nil {
		logging.Warn("Redis cache: delete failed", "key", key, "error", err)
	}
}

// GetOrSet returns the cached value, or loads, stores and returns it
func (r *RedisCacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := r.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	r.Set(key, val, duration)

	return val, nil
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

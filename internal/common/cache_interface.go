package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis caches.
// Implementations are expected to be safe for concurrent use.
type CacheInterface interface {
	// Set stores a value under key for the given duration
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the cached value and true, or nil and false when absent
	Get(key string) (interface{}, bool)

	// Delete removes the value stored under key
	Delete(key string)

	// GetOrSet returns the cached value, or loads, stores and returns it
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections
	Close() error
}

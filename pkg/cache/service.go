package cache

import "time"

// CacheService is a typed key/value cache with per-entry expiry.
type CacheService[V any] interface {
	// Get returns the value and true when the key is present and not expired.
	Get(key string) (V, bool)

	// Set stores value for ttl. A zero ttl uses the cache default.
	Set(key string, value V, ttl time.Duration)

	// Touch re-arms the expiry of an existing key and reports whether it existed.
	Touch(key string, ttl time.Duration) bool

	Delete(key string)

	// Count includes expired entries not yet cleaned up.
	Count() int
}

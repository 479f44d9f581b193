package cache

import (
	"time"

	"candleshop-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache[V any] struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory CacheService.
// defaultExpiration: TTL for entries set with a zero ttl
// cleanupInterval: how often expired entries are purged
// onEvicted, when non-nil, runs for entries removed by expiry or Delete.
func NewMemoryCache[V any](defaultExpiration, cleanupInterval time.Duration, onEvicted func(key string, value V)) cache.CacheService[V] {
	store := gocache.New(defaultExpiration, cleanupInterval)
	if onEvicted != nil {
		store.OnEvicted(func(key string, v interface{}) {
			onEvicted(key, v.(V))
		})
	}
	return &memoryCache[V]{store: store}
}

func (c *memoryCache[V]) Get(key string) (V, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (c *memoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *memoryCache[V]) Touch(key string, ttl time.Duration) bool {
	v, ok := c.store.Get(key)
	if !ok {
		return false
	}
	c.Set(key, v.(V), ttl)
	return true
}

func (c *memoryCache[V]) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache[V]) Count() int {
	return c.store.ItemCount()
}

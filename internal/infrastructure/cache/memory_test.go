package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	c := NewMemoryCache[[]string](time.Minute, 0, nil)

	_, ok := c.Get("categories")
	require.False(t, ok)

	c.Set("categories", []string{"pillar", "jar"}, 0)
	got, ok := c.Get("categories")
	require.True(t, ok)
	assert.Equal(t, []string{"pillar", "jar"}, got)
	assert.Equal(t, 1, c.Count())

	c.Delete("categories")
	_, ok = c.Get("categories")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache[int](time.Minute, 0, nil)

	c.Set("short", 1, 20*time.Millisecond)
	c.Set("long", 2, time.Hour)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("short")
		return !ok
	}, time.Second, 10*time.Millisecond)
	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestMemoryCache_Touch(t *testing.T) {
	c := NewMemoryCache[string](time.Minute, 0, nil)

	assert.False(t, c.Touch("missing", time.Hour))

	c.Set("s1", "store", 30*time.Millisecond)
	require.True(t, c.Touch("s1", time.Hour))
	time.Sleep(60 * time.Millisecond)

	v, ok := c.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, "store", v)
}

func TestMemoryCache_OnEvicted(t *testing.T) {
	var (
		mu      sync.Mutex
		evicted []string
	)
	c := NewMemoryCache[int](time.Minute, 0, func(key string, _ int) {
		mu.Lock()
		defer mu.Unlock()
		evicted = append(evicted, key)
	})

	c.Set("a", 1, 0)
	c.Delete("a")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a"}, evicted)
}

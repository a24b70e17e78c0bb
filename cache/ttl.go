package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 5 * time.Minute

type FetchFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache keeps the last successful fetch per key for a fixed duration. When a
// refresh fails, the stale value is served instead of the error.
//
// Every Invalidate bumps the generation of its key (Purge bumps all of them).
// A fetch started under an older generation still answers its callers but is
// not stored, and later misses do not join it.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[K]entry[V]
	gens    map[K]uint64
	epoch   uint64
	group   singleflight.Group
	now     func() time.Time
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
		gens:    make(map[K]uint64),
		now:     time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (c *Cache[K, V]) WithClock(now func() time.Time) *Cache[K, V] {
	c.now = now
	return c
}

func (c *Cache[K, V]) TTL() time.Duration { return c.ttl }

// Get returns the cached value for key while it is fresh, otherwise calls
// fetch. Concurrent misses on the same key share one fetch, which runs
// detached from the cancellation of the caller that started it.
func (c *Cache[K, V]) Get(ctx context.Context, key K, fetch FetchFunc[V]) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	gen := c.generation(key)
	c.mu.RUnlock()

	if ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.value, nil
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(fmt.Sprintf("%v#%d", key, gen), func() (interface{}, error) {
		started := c.now()
		value, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation(key) == gen {
			c.entries[key] = entry[V]{value: value, fetchedAt: started}
		}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		c.mu.RLock()
		stale, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return stale.value, nil
		}
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Peek returns the stored value regardless of age.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// generation must be called with c.mu held.
func (c *Cache[K, V]) generation(key K) uint64 {
	return c.epoch + c.gens[key]
}

func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.gens[key]++
}

func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
	c.epoch++
}

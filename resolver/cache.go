package resolver

import (
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/screenroom/screenroom/tracker"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// ttlCache is an in-memory map whose entries expire individually.
type ttlCache[K comparable, V any] struct {
	mu      sync.Mutex
	clock   tracker.Clock
	entries map[K]cacheEntry[V]
}

func newTTLCache[K comparable, V any](clock tracker.Clock) *ttlCache[K, V] {
	return &ttlCache[K, V]{
		clock:   clock,
		entries: make(map[K]cacheEntry[V]),
	}
}

func (c *ttlCache[K, V]) Get(key K) mo.Option[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return mo.None[V]()
	}

	if !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return mo.None[V]()
	}

	return mo.Some(entry.value)
}

func (c *ttlCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

func (c *ttlCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Prune drops expired entries and returns how many remain.
func (c *ttlCache[K, V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	return len(c.entries)
}

func (c *ttlCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

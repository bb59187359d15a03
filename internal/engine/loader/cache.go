package loader

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/catalog/internal/core/domain"
)

// Cache holds resolved item lists and in-flight loads, keyed by path list.
//
// Entries live for the lifetime of the process unless invalidated. A failed load leaves
// no entry behind, so the next request for the key retries.
type Cache struct {
	mu      sync.Mutex
	entries map[domain.CacheKey]*entry
}

type entry struct {
	items      []domain.ManifestItem
	resolved   bool
	resolvedAt time.Time
	inFlight   *flight
}

// flight is one outstanding load shared by every caller of its key.
type flight struct {
	done  chan struct{}
	items []domain.ManifestItem
	err   error
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[domain.CacheKey]*entry)}
}

// acquire returns the resolved items for key, the flight to wait on, and whether the
// caller owns that flight and must complete it.
//
// With force set, resolved items are dropped and a new flight replaces any current one.
func (c *Cache) acquire(key domain.CacheKey, force bool) ([]domain.ManifestItem, *flight, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}

	if !force {
		if e.resolved {
			return slices.Clone(e.items), nil, false
		}
		if e.inFlight != nil {
			return nil, e.inFlight, false
		}
	}

	fl := &flight{done: make(chan struct{})}
	e.items = nil
	e.resolved = false
	e.inFlight = fl
	return nil, fl, true
}

// complete publishes the outcome of fl to its waiters.
//
// The entry is only touched while fl is still its current flight; a superseded flight
// never overwrites the result of the one that replaced it.
func (c *Cache) complete(key domain.CacheKey, fl *flight, items []domain.ManifestItem, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fl.items = items
	fl.err = err

	if e, ok := c.entries[key]; ok && e.inFlight == fl {
		if err != nil {
			delete(c.entries, key)
		} else {
			e.items = items
			e.resolved = true
			e.resolvedAt = time.Now()
			e.inFlight = nil
		}
	}

	close(fl.done)
}

// Peek returns the resolved items for key without loading.
func (c *Cache) Peek(key domain.CacheKey) ([]domain.ManifestItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.resolved {
		return nil, false
	}
	return slices.Clone(e.items), true
}

// ResolvedAt reports when key was last resolved.
func (c *Cache) ResolvedAt(key domain.CacheKey) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.resolved {
		return time.Time{}, false
	}
	return e.resolvedAt, true
}

// Invalidate drops the entry for key. A load already in flight still completes for the
// callers waiting on it but is not stored.
func (c *Cache) Invalidate(key domain.CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of keys with a resolved or in-flight entry.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

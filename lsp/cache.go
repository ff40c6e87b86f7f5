// Copyright © 2025 The cssls authors

package lsp

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ComputeFunc produces a derived model for a document. It runs on the
// cache miss path and must be a pure function of the document snapshot.
type ComputeFunc[M any] func(*Document) M

type cacheEntry[M any] struct {
	version  int32
	model    M
	lastUsed time.Time
}

// ModelCache is a bounded, recency-aware cache mapping document URIs to
// derived models. An entry is valid while its stored version matches
// the document's current version; stale entries are recomputed in
// place. When the cache grows past its capacity the least recently used
// entries are evicted synchronously inside Get. A background sweep
// additionally drops entries untouched for longer than maxAge.
type ModelCache[M any] struct {
	compute  ComputeFunc[M]
	capacity int
	maxAge   time.Duration
	clock    clockwork.Clock

	mu       sync.Mutex
	entries  map[string]*cacheEntry[M]
	disposed bool

	ticker clockwork.Ticker
	done   chan struct{}
}

// NewModelCache creates a cache and starts its age sweep, which runs
// every maxAge/2 until Dispose. Non-positive capacity or maxAge falls
// back to the defaults; a zero-period ticker would panic.
func NewModelCache[M any](compute ComputeFunc[M], capacity int, maxAge time.Duration, clock clockwork.Clock) *ModelCache[M] {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	if maxAge <= 0 {
		maxAge = defaultCacheMaxAge
	}
	c := &ModelCache[M]{
		compute:  compute,
		capacity: capacity,
		maxAge:   maxAge,
		clock:    clock,
		entries:  make(map[string]*cacheEntry[M]),
		ticker:   clock.NewTicker(maxAge / 2),
		done:     make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the cached model for the document, computing a fresh one
// when there is no entry for the URI or the stored version is stale.
// Every call refreshes the entry's recency and enforces the capacity
// bound before returning.
func (c *ModelCache[M]) Get(doc *Document) M {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	if e, ok := c.entries[doc.URI]; ok && e.version == doc.Version {
		e.lastUsed = now
		return e.model
	}
	model := c.compute(doc)
	c.entries[doc.URI] = &cacheEntry[M]{
		version:  doc.Version,
		model:    model,
		lastUsed: now,
	}
	c.evictOverCapacity()
	return model
}

// OnDocumentRemoved drops the entry for a closed document. Must be
// called from the didClose handler; capacity eviction only bounds the
// leak otherwise.
func (c *ModelCache[M]) OnDocumentRemoved(uri string) {
	c.mu.Lock()
	delete(c.entries, uri)
	c.mu.Unlock()
}

// Dispose clears all entries and stops the age sweep. Idempotent.
func (c *ModelCache[M]) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	c.entries = make(map[string]*cacheEntry[M])
	c.ticker.Stop()
	close(c.done)
}

// Len returns the number of cached entries.
func (c *ModelCache[M]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOverCapacity removes least recently used entries until the size
// bound holds again. Callers hold c.mu.
func (c *ModelCache[M]) evictOverCapacity() {
	for len(c.entries) > c.capacity {
		oldest := ""
		var oldestAt time.Time
		for uri, e := range c.entries {
			if oldest == "" || e.lastUsed.Before(oldestAt) {
				oldest = uri
				oldestAt = e.lastUsed
			}
		}
		delete(c.entries, oldest)
	}
}

func (c *ModelCache[M]) sweep() {
	for {
		select {
		case <-c.done:
			return
		case <-c.ticker.Chan():
			c.dropExpired()
		}
	}
}

// dropExpired removes entries whose last use is older than maxAge,
// bounding memory for documents that are open but idle.
func (c *ModelCache[M]) dropExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.clock.Now().Add(-c.maxAge)
	for uri, e := range c.entries {
		if e.lastUsed.Before(cutoff) {
			delete(c.entries, uri)
		}
	}
}

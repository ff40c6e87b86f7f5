// Copyright © 2025 The cssls authors

package lsp

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/cssls/css"
)

// countingCompute parses documents through a css engine and counts
// invocations.
type countingCompute struct {
	calls  atomic.Int64
	engine *css.Service
}

func newCountingCompute() *countingCompute {
	return &countingCompute{engine: css.NewService(css.DialectCSS)}
}

func (c *countingCompute) compute(doc *Document) *css.Stylesheet {
	c.calls.Add(1)
	return c.engine.Parse(doc.URI, doc.Content)
}

func testDoc(uri string, version int32, content string) *Document {
	return &Document{URI: uri, LanguageID: "css", Version: version, Content: content}
}

func TestCacheHit(t *testing.T) {
	cc := newCountingCompute()
	cache := NewModelCache(cc.compute, 10, time.Minute, clockwork.NewFakeClock())
	defer cache.Dispose()

	doc := testDoc("file:///a.css", 1, ".x{color:red}")
	first := cache.Get(doc)
	second := cache.Get(doc)

	assert.Same(t, first, second, "unchanged version must return the cached model")
	assert.Equal(t, int64(1), cc.calls.Load())
}

func TestCacheVersionInvalidation(t *testing.T) {
	cc := newCountingCompute()
	cache := NewModelCache(cc.compute, 10, time.Minute, clockwork.NewFakeClock())
	defer cache.Dispose()

	v1 := cache.Get(testDoc("file:///a.css", 1, ".x{color:red}"))
	v2 := cache.Get(testDoc("file:///a.css", 2, ".y{color:blue}"))

	assert.NotSame(t, v1, v2)
	assert.Equal(t, int64(2), cc.calls.Load())
	require.Len(t, v2.Rules, 1)
	assert.Equal(t, ".y", v2.Rules[0].Selectors[0].Text)
	assert.Equal(t, 1, cache.Len(), "stale entry is replaced, not duplicated")
}

func TestCacheCapacityEviction(t *testing.T) {
	cc := newCountingCompute()
	clock := clockwork.NewFakeClock()
	cache := NewModelCache(cc.compute, 10, time.Minute, clock)
	defer cache.Dispose()

	for i := 0; i < 11; i++ {
		cache.Get(testDoc(fmt.Sprintf("file:///doc%d.css", i), 1, ".x{}"))
		clock.Advance(time.Millisecond)
	}
	assert.Equal(t, 10, cache.Len())
	assert.Equal(t, int64(11), cc.calls.Load())

	// doc0 was least recently used and must be the one evicted.
	cache.Get(testDoc("file:///doc1.css", 1, ".x{}"))
	assert.Equal(t, int64(11), cc.calls.Load(), "doc1 survived eviction")
	cache.Get(testDoc("file:///doc0.css", 1, ".x{}"))
	assert.Equal(t, int64(12), cc.calls.Load(), "doc0 was evicted and recomputes")
}

func TestCacheAgeSweep(t *testing.T) {
	cc := newCountingCompute()
	clock := clockwork.NewFakeClock()
	cache := NewModelCache(cc.compute, 10, time.Minute, clock)
	defer cache.Dispose()

	cache.Get(testDoc("file:///a.css", 1, ".x{}"))

	// First sweep at 30s: the entry is younger than maxAge and stays.
	clock.Advance(31 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, cache.Len())

	// Second sweep at 60s: the entry is now past maxAge.
	clock.Advance(31 * time.Second)
	require.Eventually(t, func() bool { return cache.Len() == 0 },
		time.Second, time.Millisecond)
}

func TestCacheRemoval(t *testing.T) {
	cc := newCountingCompute()
	cache := NewModelCache(cc.compute, 10, time.Minute, clockwork.NewFakeClock())
	defer cache.Dispose()

	doc := testDoc("file:///a.css", 1, ".x{}")
	cache.Get(doc)
	cache.OnDocumentRemoved(doc.URI)
	assert.Equal(t, 0, cache.Len())

	cache.Get(doc)
	assert.Equal(t, int64(2), cc.calls.Load(), "removal forces recomputation despite matching version")

	t.Run("unknown URI is a no-op", func(t *testing.T) {
		cache.OnDocumentRemoved("file:///never-opened.css")
		assert.Equal(t, 1, cache.Len())
	})
}

func TestCacheDispose(t *testing.T) {
	cc := newCountingCompute()
	cache := NewModelCache(cc.compute, 10, time.Minute, clockwork.NewFakeClock())

	cache.Get(testDoc("file:///a.css", 1, ".x{}"))
	cache.Dispose()
	assert.Equal(t, 0, cache.Len())

	// Idempotent.
	cache.Dispose()
}

func TestCacheZeroConfigFallsBackToDefaults(t *testing.T) {
	cc := newCountingCompute()

	// A zero max age must not panic the sweep ticker, and a zero
	// capacity must not evict everything on sight.
	cache := NewModelCache(cc.compute, 0, 0, clockwork.NewFakeClock())
	defer cache.Dispose()

	cache.Get(testDoc("file:///a.css", 1, ".x{color:red}"))
	cache.Get(testDoc("file:///b.css", 1, ".y{color:blue}"))
	assert.Equal(t, 2, cache.Len())
}

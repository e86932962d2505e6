// Package cache provides a bounded, time-expiring store for retrieval
// contexts, keyed by normalized keyword.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/jonathan/seo-assistant/internal/types"
)

// Default sizing, matching the pipeline's documented configuration surface.
const (
	DefaultTTL      = time.Hour
	DefaultCapacity = 100
)

// ContextCache maps normalized keywords to previously computed retrieval
// contexts. Entries expire TTL after insertion and are evicted lazily on
// lookup; when the cache is full the least-recently-used entry is evicted
// before insert. Safe for concurrent use; on racing writes to the same key
// the last writer wins.
type ContextCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	now func() time.Time // overridable for tests
}

type cacheEntry struct {
	key       string
	context   *types.RetrievalContext
	expiresAt time.Time
}

// New creates a cache with the given capacity and default TTL.
// Non-positive arguments fall back to the package defaults.
func New(capacity int, ttl time.Duration) *ContextCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ContextCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the cached context for a keyword, or nil and false on a miss.
// Expired entries are removed and reported as misses.
func (c *ContextCache) Get(keyword string) (*types.RetrievalContext, bool) {
	key := types.NormalizeKeyword(keyword)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, key)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.context, true
}

// Put stores a context under its normalized keyword with the default TTL.
func (c *ContextCache) Put(keyword string, context *types.RetrievalContext) {
	c.PutTTL(keyword, context, c.ttl)
}

// PutTTL stores a context with an explicit TTL, evicting the
// least-recently-used entry if the cache is at capacity.
func (c *ContextCache) PutTTL(keyword string, context *types.RetrievalContext, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	key := types.NormalizeKeyword(keyword)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.context = context
		entry.expiresAt = c.now().Add(ttl)
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{
		key:       key,
		context:   context,
		expiresAt: c.now().Add(ttl),
	})
}

// Len returns the number of entries currently held, including any that have
// expired but not yet been evicted.
func (c *ContextCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops all entries. Used at teardown and in tests.
func (c *ContextCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

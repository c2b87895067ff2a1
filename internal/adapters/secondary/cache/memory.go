package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
)

// MemoryCache is a thread-safe LRU cache with per-entry expiry.
type MemoryCache struct {
	clock      clockwork.Clock
	maxEntries int

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *entry
	next      *entry
}

var _ ports.ResponseCache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache holding at most maxEntries bodies.
func NewMemoryCache(maxEntries int, clock clockwork.Clock) *MemoryCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &MemoryCache{
		clock:      clock,
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return nil, domain.ErrCacheMiss
	}
	c.moveToFront(e)
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return nil
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *MemoryCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *MemoryCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *MemoryCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

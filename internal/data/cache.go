package data

import (
	"sync"
	"time"

	"rainrunoff/internal/simulate"

	"github.com/google/uuid"
)

// CacheEntry represents a cached run result
type CacheEntry struct {
	Result    *simulate.Result
	ExpiresAt time.Time
}

// RunCache keeps recent simulation results in memory so their ledgers can be
// fetched after the run request returned. Nothing is written to disk.
type RunCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewRunCache creates a cache whose entries live for ttl.
func NewRunCache(ttl time.Duration) *RunCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RunCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
}

// Put stores a result under a fresh run ID and returns the ID.
func (c *RunCache) Put(result *simulate.Result) string {
	id := uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &CacheEntry{
		Result:    result,
		ExpiresAt: c.now().Add(c.ttl),
	}
	return id
}

// Get retrieves a cached result if available and not expired
func (c *RunCache) Get(id string) (*simulate.Result, bool) {
	if c == nil {
		return nil, false
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

// Len returns the number of stored entries, expired or not.
func (c *RunCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *RunCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Evict removes expired entries.
func (c *RunCache) Evict() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// StartCleanup evicts expired entries every interval until Close is called.
func (c *RunCache) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Evict()
			case <-c.stop:
				return
			}
		}
	}()
}

func (c *RunCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

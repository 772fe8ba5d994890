package cache

import (
	"context"
	"sync"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
)

// DefaultSweepInterval is used when no sweep interval is configured
const DefaultSweepInterval = time.Minute

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryResultCache implements shared.ResultCache with a process-local map.
// Expired entries are dropped lazily on read and by a background sweep.
type InMemoryResultCache struct {
	mu        sync.RWMutex
	entries   map[string]cacheEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryResultCache creates the cache and starts its sweep goroutine.
// Close must be called to stop it.
func NewInMemoryResultCache(sweepInterval time.Duration) *InMemoryResultCache {
	return newInMemoryResultCache(sweepInterval, time.Now)
}

func newInMemoryResultCache(sweepInterval time.Duration, now func() time.Time) *InMemoryResultCache {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	c := &InMemoryResultCache{
		entries:  make(map[string]cacheEntry),
		now:      now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.sweepLoop(sweepInterval)

	return c
}

// Get returns a copy of the value stored under key
func (c *InMemoryResultCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value for ttl. A non-positive ttl stores nothing.
func (c *InMemoryResultCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Delete removes key
func (c *InMemoryResultCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close stops the sweep goroutine. Safe to call multiple times.
func (c *InMemoryResultCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Sweep removes every expired entry and returns how many were removed
func (c *InMemoryResultCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of stored entries, expired ones included until swept
func (c *InMemoryResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryResultCache) sweepLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

var _ shared.ResultCache = (*InMemoryResultCache)(nil)

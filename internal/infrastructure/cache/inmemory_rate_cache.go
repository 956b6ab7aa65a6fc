package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const defaultCleanupInterval = time.Minute

type rateEntry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

func (e rateEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryRateCache implements RateCache with a process-local map.
// It is suitable for single-instance deployments and testing.
type InMemoryRateCache struct {
	mu        sync.RWMutex
	entries   map[string]rateEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryRateCache creates a cache and starts its cleanup goroutine
func NewInMemoryRateCache() *InMemoryRateCache {
	c := &InMemoryRateCache{
		entries:  make(map[string]rateEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(defaultCleanupInterval)

	return c
}

// Get implements RateCache
func (c *InMemoryRateCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.isExpired(c.now()) {
		return decimal.Zero, false, nil
	}
	return e.rate, true, nil
}

// Set implements RateCache
func (c *InMemoryRateCache) Set(_ context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = rateEntry{rate: rate, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryRateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryRateCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemoryRateCache) removeExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.isExpired(now) {
			delete(c.entries, key)
		}
	}
}

// Close stops the cleanup goroutine
func (c *InMemoryRateCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

var _ RateCache = (*InMemoryRateCache)(nil)

package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache stores computed read results keyed by invalidation path.
// Keys are path-like ("/dashboard|<user>", "/customers/<id>") so that a
// mutation can evict every entry below a path with DeletePrefix.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)

	// GetOrSet returns the cached value or stores the result of compute.
	// compute errors are returned and nothing is cached.
	GetOrSet(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error)

	Delete(key string)

	// DeletePrefix removes every key starting with prefix and returns how many were removed
	DeletePrefix(prefix string) int

	Clear()
	Size() int
	Stop()
}

type cacheItem struct {
	value      interface{}
	expiration time.Time
}

func (item *cacheItem) isExpired(now time.Time) bool {
	return now.After(item.expiration)
}

// InMemoryCache is a thread-safe TTL cache with a background sweeper
type InMemoryCache struct {
	items           map[string]*cacheItem
	mu              sync.RWMutex
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// NewInMemoryCache creates a cache that sweeps expired items every cleanupInterval
func NewInMemoryCache(cleanupInterval time.Duration) *InMemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	c := &InMemoryCache{
		items:           make(map[string]*cacheItem),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go c.startCleanup()

	return c
}

func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || item.isExpired(time.Now()) {
		return nil, false
	}
	return item.value, true
}

func (c *InMemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
}

func (c *InMemoryCache) GetOrSet(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	// compute runs outside the lock: it usually issues database reads and
	// holding the write lock would serialize every reader behind them
	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.Set(key, value, ttl)
	return value, nil
}

func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *InMemoryCache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
}

// Size includes expired items not yet swept
func (c *InMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stop ends the sweeper goroutine. Safe to call more than once.
func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

func (c *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *InMemoryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if item.isExpired(now) {
			delete(c.items, key)
		}
	}
}

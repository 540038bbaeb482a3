// Package service contains the allocation engine and its collaborators.
package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/metrics"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service/cache"
)

const (
	defaultShards   = 16
	cleanupInterval = time.Minute
)

// ShardedCache spreads plans over several LRU shards to reduce lock contention.
type ShardedCache struct {
	shards    []*ttlCache
	shardMask uint64
}

// NewShardedCache creates a cache with the given total capacity and TTL.
// numShards is rounded up to a power of two; zero or less means 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache, n)
	for i := range shards {
		shards[i] = newTTLCache(perShard, ttl)
	}

	return &ShardedCache{shards: shards, shardMask: uint64(n - 1)}
}

func (sc *ShardedCache) shard(key string) *ttlCache {
	return sc.shards[xxhash.Sum64String(key)&sc.shardMask]
}

// Get retrieves a plan from the owning shard.
func (sc *ShardedCache) Get(key string) (model.MealPlan, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a plan in the owning shard.
func (sc *ShardedCache) Set(key string, value model.MealPlan) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes a key from the owning shard.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
}

// Clear empties every shard.
func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop shuts down every shard.
func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics sums the metrics of all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is an LRU cache whose entries also expire after a fixed TTL.
type ttlCache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	clock     func() time.Time
	items     map[string]*cacheEntry
	head      *cacheEntry
	tail      *cacheEntry
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type cacheEntry struct {
	key       string
	value     model.MealPlan
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// newTTLCache starts a cache with a background sweeper for expired entries.
func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		clock:    time.Now,
		items:    make(map[string]*cacheEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Stop ends the background sweeper. It is safe to call more than once.
func (c *ttlCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance metrics.
func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

// Get returns a live entry and marks it most recently used.
func (c *ttlCache) Get(key string) (model.MealPlan, bool) {
	c.mu.Lock()
	entry, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.MealPlan{}, false
	}

	if c.clock().After(entry.expiresAt) {
		c.removeEntry(entry)
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.MealPlan{}, false
	}

	c.moveToFront(entry)
	value := entry.value
	c.mu.Unlock()

	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return value, true
}

// Set adds or refreshes an entry, evicting the least recently used one when full.
func (c *ttlCache) Set(key string, value model.MealPlan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = entry
	c.addToFront(entry)

	if len(c.items) > c.capacity {
		c.removeEntry(c.tail)
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheMetrics(len(c.items), c.capacity)
}

// Invalidate removes a specific key from the cache.
func (c *ttlCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every entry and resets the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheEntry, c.capacity)
	c.head = nil
	c.tail = nil
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)

	metrics.RecordCacheOperation("clear", "success")
}

func (c *ttlCache) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.clock()
	for _, entry := range c.items {
		if current.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
	}
}

func (c *ttlCache) removeEntry(entry *cacheEntry) {
	if entry == nil {
		return
	}
	delete(c.items, entry.key)
	c.unlink(entry)
}

func (c *ttlCache) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *ttlCache) addToFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

func (c *ttlCache) unlink(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

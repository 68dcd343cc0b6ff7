package report

import (
	"container/list"
	"sync"

	"github.com/aevon-lab/healstats/internal/core/aggregation"
)

// statsCache is a thread-safe LRU of aggregated stats instances.
// Instances are immutable once built, so they are shared rather than copied.
type statsCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key   string
	stats *aggregation.AggregatedStats
}

func newStatsCache(capacity int) *statsCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &statsCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached instance for key, or nil.
func (c *statsCache) Get(key string) *aggregation.AggregatedStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.cache[key]
	if !exists {
		return nil
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).stats
}

// Put stores stats under key, evicting the least recently used entry if full.
func (c *statsCache) Put(key string, stats *aggregation.AggregatedStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.cache[key]; exists {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).stats = stats
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.cache, oldest.Value.(*cacheEntry).key)
			c.order.Remove(oldest)
		}
	}

	c.cache[key] = c.order.PushFront(&cacheEntry{key: key, stats: stats})
}

func (c *statsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

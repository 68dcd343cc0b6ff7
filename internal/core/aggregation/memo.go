package aggregation

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// detailCache is a compute-or-fetch map of per-id detail views.
// Once a key is stored it is never replaced, so callers always get the same vector.
type detailCache struct {
	mu      sync.RWMutex
	vectors map[uint64]*AggregatedVector
	group   singleflight.Group // dedupe concurrent computation of one id
}

func newDetailCache() *detailCache {
	return &detailCache{vectors: make(map[uint64]*AggregatedVector)}
}

func (c *detailCache) lookup(id uint64) (*AggregatedVector, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vectors[id]
	return v, ok
}

// getOrCompute returns the cached vector for id, running compute at most once per id.
func (c *detailCache) getOrCompute(id uint64, compute func() *AggregatedVector) *AggregatedVector {
	if v, ok := c.lookup(id); ok {
		return v
	}

	result, _, _ := c.group.Do(strconv.FormatUint(id, 10), func() (interface{}, error) {
		// Double-check after winning the flight; a previous flight may have stored it.
		if v, ok := c.lookup(id); ok {
			return v, nil
		}

		v := compute()

		c.mu.Lock()
		c.vectors[id] = v
		c.mu.Unlock()

		return v, nil
	})

	return result.(*AggregatedVector)
}

// Len returns how many ids have been computed.
func (c *detailCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

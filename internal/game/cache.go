// file: internal/game/cache.go
package game

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// approximate bytes per cached position inside the lru
const cacheEntryBytes = 96

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// HitRate 命中率，没有查询时为 0
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// EvalCache maps fingerprints to static scores. It is safe for concurrent
// use. With capacity > 0 the least recently used entry is evicted once the
// cache is full; capacity 0 means unbounded.
type EvalCache struct {
	capacity int
	bounded  *lru.Cache[uint64, int]

	mu    sync.Mutex
	items map[uint64]int // capacity 0 only

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

func NewEvalCache(capacity int) *EvalCache {
	if capacity < 0 {
		capacity = 0
	}
	c := &EvalCache{capacity: capacity}
	if capacity == 0 {
		c.items = make(map[uint64]int)
		return c
	}
	// only fails for a non-positive size
	c.bounded, _ = lru.NewWithEvict(capacity, func(uint64, int) {
		c.evictions.Add(1)
	})
	return c
}

// CapacityFromMemory sizes a cache to use roughly fraction of system memory.
func CapacityFromMemory(fraction float64) int {
	if fraction <= 0 {
		return 0
	}
	total := memory.TotalMemory()
	if total == 0 {
		log.Warn().Msg("could not determine system memory; cache left unbounded")
		return 0
	}
	n := int(float64(total) * fraction / cacheEntryBytes)
	log.Debug().Uint64("total-mem", total).Float64("fraction", fraction).
		Int("capacity", n).Msg("eval-cache-sized")
	return n
}

func (c *EvalCache) Capacity() int { return c.capacity }

func (c *EvalCache) Get(fp uint64) (int, bool) {
	var (
		score int
		ok    bool
	)
	if c.bounded != nil {
		score, ok = c.bounded.Get(fp)
	} else {
		c.mu.Lock()
		score, ok = c.items[fp]
		c.mu.Unlock()
	}
	if !ok {
		c.misses.Add(1)
		return 0, false
	}
	c.hits.Add(1)
	return score, true
}

func (c *EvalCache) Put(fp uint64, score int) {
	if c.bounded != nil {
		c.bounded.Add(fp, score)
		return
	}
	c.mu.Lock()
	c.items[fp] = score
	c.mu.Unlock()
}

func (c *EvalCache) Len() int {
	if c.bounded != nil {
		return c.bounded.Len()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear drops every entry and resets the counters.
func (c *EvalCache) Clear() {
	if c.bounded != nil {
		c.bounded.Purge()
	} else {
		c.mu.Lock()
		c.items = make(map[uint64]int)
		c.mu.Unlock()
	}
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

func (c *EvalCache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
	}
}

package game

import (
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestCacheUnbounded(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(0)
	for i := uint64(0); i < 1000; i++ {
		c.Put(i, int(i))
	}
	is.Equal(c.Len(), 1000)
	v, ok := c.Get(500)
	is.True(ok)
	is.Equal(v, 500)
	_, ok = c.Get(5000)
	is.True(!ok)

	st := c.Stats()
	is.Equal(st.Hits, uint64(1))
	is.Equal(st.Misses, uint64(1))
	is.Equal(st.Evictions, uint64(0))
	is.Equal(st.HitRate(), 0.5)
}

func TestCacheLRUEviction(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(3)
	c.Put(1, 10)
	c.Put(2, 20)
	c.Put(3, 30)
	_, _ = c.Get(1) // 1 is now most recent
	c.Put(4, 40)    // evicts 2

	is.Equal(c.Len(), 3)
	_, ok := c.Get(2)
	is.True(!ok)
	v, ok := c.Get(1)
	is.True(ok)
	is.Equal(v, 10)
	is.Equal(c.Stats().Evictions, uint64(1))

	c.Put(3, 33) // overwrite refreshes
	c.Put(5, 50) // evicts 4
	_, ok = c.Get(4)
	is.True(!ok)
	v, _ = c.Get(3)
	is.Equal(v, 33)
}

func TestCacheClear(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(0)
	c.Put(1, 1)
	_, _ = c.Get(1)
	c.Clear()
	is.Equal(c.Len(), 0)
	is.Equal(c.Stats(), CacheStats{})
}

func TestCacheConcurrent(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(64)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := uint64(i % 100)
				c.Put(k, i)
				_, _ = c.Get(k)
			}
		}(w)
	}
	wg.Wait()
	is.True(c.Len() <= 64)
	st := c.Stats()
	is.Equal(st.Hits+st.Misses, uint64(8000))
}

func TestCacheClearBounded(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(2)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3)
	is.Equal(c.Stats().Evictions, uint64(1))
	c.Clear()
	is.Equal(c.Len(), 0)
	is.Equal(c.Stats(), CacheStats{})
	_, ok := c.Get(3)
	is.True(!ok)
	is.Equal(c.Capacity(), 2)
}

package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/stretchr/testify/assert"
	"testing"
)

type view struct {
	Nodes []string
}

func viewCost(value view) int64 {
	return int64(len(value.Nodes) + 1)
}

func TestLayoutCacheImpl_Get(t *testing.T) {
	t.Run("should return an error if the key is not found", func(t *testing.T) {
		lc, _ := getNewLayoutCacheImpl("timeline")
		_, err := lc.Get(Key{RequestId: "req-001"})
		assert.Equal(t, ErrKeyNotFound, err)
	})

	t.Run("should return the value if the key is found", func(t *testing.T) {
		lc, cache := getNewLayoutCacheImpl("timeline")
		key := Key{RequestId: "req-001", Width: 800}
		value := view{Nodes: []string{"span-001"}}
		err := lc.Put(key, value)
		assert.Nil(t, err)
		cache.Wait()
		res, err := lc.Get(key)
		assert.Nil(t, err)
		assert.Equal(t, value, res)
	})

	t.Run("should keep different sizes apart", func(t *testing.T) {
		lc, cache := getNewLayoutCacheImpl("timeline")
		err := lc.Put(Key{RequestId: "req-001", Width: 800}, view{Nodes: []string{"a"}})
		assert.Nil(t, err)
		cache.Wait()
		_, err = lc.Get(Key{RequestId: "req-001", Width: 400})
		assert.Equal(t, ErrKeyNotFound, err)
	})

	t.Run("should reject values of another view sharing the cache", func(t *testing.T) {
		cache := newRistretto()
		other := NewLayoutCacheImpl[string](cache, "timeline", func(value string) int64 { return 1 })
		lc := NewLayoutCacheImpl[view](cache, "timeline", viewCost)
		assert.Nil(t, other.Put(Key{RequestId: "req-001"}, "not a view"))
		cache.Wait()
		_, err := lc.Get(Key{RequestId: "req-001"})
		assert.Error(t, err)
		assert.NotEqual(t, ErrKeyNotFound, err)
	})
}

func TestLayoutCacheImpl_GetOrCompute(t *testing.T) {
	t.Run("should compute on a miss and reuse on a hit", func(t *testing.T) {
		lc, cache := getNewLayoutCacheImpl("flowchart")
		key := Key{RequestId: "req-002", Width: 1200, Height: 600}
		calls := 0
		compute := func() view {
			calls++
			return view{Nodes: []string{"span-010", "span-011"}}
		}
		res, hit, err := lc.GetOrCompute(key, compute)
		assert.Nil(t, err)
		assert.False(t, hit)
		assert.Len(t, res.Nodes, 2)
		cache.Wait()

		res, hit, err = lc.GetOrCompute(key, compute)
		assert.Nil(t, err)
		assert.True(t, hit)
		assert.Len(t, res.Nodes, 2)
		assert.Equal(t, 1, calls)
	})
}

func newRistretto() *ristretto.Cache {
	cache, _ := ristretto.NewCache(&ristretto.Config{
		NumCounters: (1 << 20) * 10,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	return cache
}

func getNewLayoutCacheImpl(name string) (*LayoutCacheImpl[view], *ristretto.Cache) {
	cache := newRistretto()
	return NewLayoutCacheImpl[view](cache, name, viewCost), cache
}

package cache

import (
	"errors"
	"fmt"
	"github.com/dgraph-io/ristretto"
)

// LayoutCache memoizes computed view models. Requests never change once stored, so an entry stays
// valid until it is evicted. Eviction is based on LRU and LFU policies.
type LayoutCache[ValueType interface{}] interface {
	Get(key Key) (ValueType, error)
	Put(key Key, value ValueType) error
	// GetOrCompute returns the cached value for the key, computing and storing it on a miss. The
	// boolean reports whether the value came from the cache.
	GetOrCompute(key Key, compute func() ValueType) (ValueType, bool, error)
}

// Key identifies one view model of one request at one viewport size.
type Key struct {
	RequestId string
	Width     float64
	Height    float64
	Variant   string
}

type LayoutCacheImpl[ValueType interface{}] struct {
	cache *ristretto.Cache
	view  string
	cost  func(value ValueType) int64
}

// NewLayoutCacheImpl namespaces its entries by view so that several typed caches can share one
// ristretto cache. cost estimates the size of a value against the cache's MaxCost.
func NewLayoutCacheImpl[ValueType interface{}](
	cache *ristretto.Cache,
	view string,
	cost func(value ValueType) int64,
) *LayoutCacheImpl[ValueType] {
	return &LayoutCacheImpl[ValueType]{
		cache: cache,
		view:  view,
		cost:  cost,
	}
}

func (lc *LayoutCacheImpl[ValueType]) Get(key Key) (ValueType, error) {
	var zero ValueType
	value, found := lc.cache.Get(lc.cacheKey(key))
	if !found {
		return zero, ErrKeyNotFound
	}
	typedValue, ok := value.(ValueType)
	if !ok {
		return zero, fmt.Errorf("value not of expected type %T returned from cache when getting", value)
	}
	return typedValue, nil
}

func (lc *LayoutCacheImpl[ValueType]) Put(key Key, value ValueType) error {
	set := lc.cache.Set(lc.cacheKey(key), value, lc.cost(value))
	if !set {
		return ErrSetFailed
	}
	return nil
}

func (lc *LayoutCacheImpl[ValueType]) GetOrCompute(
	key Key,
	compute func() ValueType,
) (ValueType, bool, error) {
	value, err := lc.Get(key)
	if err == nil {
		return value, true, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return value, false, err
	}
	value = compute()
	if err := lc.Put(key, value); err != nil {
		// the value is still usable, only the memoization was dropped
		return value, false, err
	}
	return value, false, nil
}

func (lc *LayoutCacheImpl[ValueType]) cacheKey(key Key) string {
	return fmt.Sprintf("%s|%s|%g|%g|%s", lc.view, key.RequestId, key.Width, key.Height, key.Variant)
}

var (
	ErrKeyNotFound = errors.New("key not found within the cache")
	ErrSetFailed   = errors.New("failed to set value in cache")
)

package cache

// EvictionListener observes entries leaving the cache by eviction or expiration.
// It runs synchronously inside the triggering call and must not call back into the cache.
// Explicit removals and Clear are not reported.
type EvictionListener[K comparable, V any] interface {
	OnEvict(key K, value V)
}

// EvictionFunc adapts a plain function to EvictionListener.
type EvictionFunc[K comparable, V any] func(key K, value V)

func (fn EvictionFunc[K, V]) OnEvict(key K, value V) { fn(key, value) }

type noopListener[K comparable, V any] struct{}

func (noopListener[K, V]) OnEvict(K, V) {}

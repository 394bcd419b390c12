package lfucache

import (
	"github.com/Borislavv/go-lfu-cache/internal/cache"
	"github.com/rs/zerolog"
)

// Option customizes a cache at construction.
type Option[K comparable, V any] func(o *options[K, V])

type options[K comparable, V any] struct {
	core   cache.Options[K, V]
	logger zerolog.Logger
}

func applyOptions[K comparable, V any](opts []Option[K, V]) *options[K, V] {
	o := &options[K, V]{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEvictionListener is notified of entries evicted by admission or expiration.
func WithEvictionListener[K comparable, V any](l EvictionListener[K, V]) Option[K, V] {
	return func(o *options[K, V]) { o.core.Listener = l }
}

// WithEvictionFunc is WithEvictionListener for a plain function.
func WithEvictionFunc[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) { o.core.Listener = EvictionFunc[K, V](fn) }
}

// WithRecorder reports cache events to an external metrics system.
func WithRecorder[K comparable, V any](r Recorder) Option[K, V] {
	return func(o *options[K, V]) { o.core.Recorder = r }
}

// WithClock overrides the TTL time source.
func WithClock[K comparable, V any](c Clock) Option[K, V] {
	return func(o *options[K, V]) { o.core.Clock = c }
}

// WithKeyHasher overrides the hash that feeds frequency estimation.
// It does not affect key equality.
func WithKeyHasher[K comparable, V any](fn func(key K) uint64) Option[K, V] {
	return func(o *options[K, V]) { o.core.Hasher = fn }
}

// WithLogger sets the logger used by Synced and its background workers.
func WithLogger[K comparable, V any](l zerolog.Logger) Option[K, V] {
	return func(o *options[K, V]) { o.logger = l }
}

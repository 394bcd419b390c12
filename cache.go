// Package lfucache is an in-process, fixed-capacity key/value cache.
//
// A new key only displaces the least recently used entry when it has been
// seen more often recently (TinyLFU admission), so one-off keys cannot flush
// a warm working set. Entries may carry a TTL that is checked lazily on access.
//
// Cache is not safe for concurrent use; Synced wraps it with a mutex and
// optional background workers.
package lfucache

import (
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/Borislavv/go-lfu-cache/internal/cache"
)

type (
	Metrics     = cache.Metrics
	Recorder    = cache.Recorder
	EvictReason = cache.EvictReason
	Clock       = cache.Clock

	NoopRecorder = cache.NoopRecorder

	EvictionListener[K comparable, V any] = cache.EvictionListener[K, V]
	EvictionFunc[K comparable, V any]     = cache.EvictionFunc[K, V]
)

const (
	EvictPolicy = cache.EvictPolicy
	EvictTTL    = cache.EvictTTL
)

// Cache is the single-threaded cache. See the embedded type for the operation set:
// Insert, InsertWithTTL, Get, GetMut, Remove, Contains, IsEmpty, Len, Capacity,
// RoomLeft, Clear, Range, Metrics, ResetMetrics, Estimate, Agings and SweepExpired.
type Cache[K comparable, V any] struct {
	*cache.Cache[K, V]
}

// New builds a cache from cfg. A nil cfg is treated as empty and fails validation.
func New[K comparable, V any](cfg *config.Cache, opts ...Option[K, V]) (*Cache[K, V], error) {
	o := applyOptions(opts)
	c, err := cache.New[K, V](cfg, o.core)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{Cache: c}, nil
}

// NewWithCapacity is a shortcut for a TinyLFU cache with default tuning.
func NewWithCapacity[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](&config.Cache{
		DB:               config.DBCfg{Capacity: capacity},
		AdmissionControl: &config.AdmissionControlCfg{},
	}, opts...)
}

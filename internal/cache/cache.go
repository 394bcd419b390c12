package cache

import (
	"fmt"
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/Borislavv/go-lfu-cache/internal/cache/db"
	"github.com/Borislavv/go-lfu-cache/internal/cache/db/bloom"
	"github.com/Borislavv/go-lfu-cache/internal/cache/db/model"
	"github.com/benbjohnson/clock"
	"time"
)

// Clock is the time source used for TTL checks. clock.Clock satisfies it.
type Clock interface {
	Now() time.Time
}

// Options carries the optional collaborators of a Cache. Zero values select defaults.
type Options[K comparable, V any] struct {
	Listener EvictionListener[K, V]
	Recorder Recorder
	Clock    Clock
	Hasher   model.KeyHasher[K]
}

// Cache is a fixed-capacity cache with TinyLFU admission, LRU victim selection and lazy TTL.
//
// Not safe for concurrent use.
type Cache[K comparable, V any] struct {
	cfg      *config.Cache
	store    *db.Store[K, V]
	admitter bloom.AdmissionControl
	hasher   model.KeyHasher[K]
	clock    Clock
	listener EvictionListener[K, V]
	recorder Recorder
	counters *counters

	sweepOnInsert bool
	sweepBatch    int
}

// New validates cfg and builds the cache.
func New[K comparable, V any](cfg *config.Cache, opts Options[K, V]) (*Cache[K, V], error) {
	if cfg == nil {
		cfg = &config.Cache{}
	}
	cfg.AdjustConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new cache: %w", err)
	}

	c := &Cache[K, V]{
		cfg:      cfg,
		store:    db.NewStore[K, V](cfg.DB.Capacity),
		admitter: bloom.NewAdmissionControl(cfg.AdmissionControl),
		hasher:   opts.Hasher,
		clock:    opts.Clock,
		listener: opts.Listener,
		recorder: opts.Recorder,
		counters: newCounters(cfg.DB.MetricsEnabled),
	}
	if c.hasher == nil {
		c.hasher = model.NewKeyHasher[K]()
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.listener == nil {
		c.listener = noopListener[K, V]{}
	}
	if c.recorder == nil {
		c.recorder = NoopRecorder{}
	}
	if cfg.Lifetime.Enabled() {
		c.sweepOnInsert = cfg.Lifetime.SweepOnInsert
		c.sweepBatch = cfg.Lifetime.SweepBatch
	}
	return c, nil
}

// Insert stores value under key without expiration.
// An existing key is updated in place and its previous value is returned with replaced=true;
// any previous expiration is cleared. When the cache is full the key must win the admission
// contest against the least recently used entry, otherwise ErrRejected is returned.
func (c *Cache[K, V]) Insert(key K, value V) (prev V, replaced bool, err error) {
	return c.insert(key, value, 0)
}

// InsertWithTTL is Insert with an expiration. A non-positive ttl means no expiration.
func (c *Cache[K, V]) InsertWithTTL(key K, value V, ttl time.Duration) (prev V, replaced bool, err error) {
	return c.insert(key, value, ttl)
}

// Get returns the value of a live key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if e, ok := c.access(key); ok {
		return e.Value, true
	}
	var zero V
	return zero, false
}

// GetMut is Get returning a pointer to the stored value.
// The pointer is valid until the next call that may remove or evict the key.
func (c *Cache[K, V]) GetMut(key K) (*V, bool) {
	if e, ok := c.access(key); ok {
		return &e.Value, true
	}
	return nil, false
}

// Remove deletes key and returns its value. The eviction listener is not called.
// An expired key is reported absent.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	var zero V
	i, ok := c.live(key)
	if !ok {
		return zero, false
	}
	e := c.store.Delete(i)
	c.counters.remove()
	c.recorder.Remove()
	c.recorder.Size(c.store.Len())
	return e.Value, true
}

// Contains reports whether key is present and live. It neither touches recency nor counts hits.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.live(key)
	return ok
}

// IsEmpty reports whether the store holds no entries, expired ones included.
func (c *Cache[K, V]) IsEmpty() bool { return c.store.Len() == 0 }

// Len returns the number of stored entries, expired ones included.
func (c *Cache[K, V]) Len() int      { return c.store.Len() }
func (c *Cache[K, V]) Capacity() int { return c.store.Capacity() }
func (c *Cache[K, V]) RoomLeft() int { return c.store.RoomLeft() }

// Clear drops all entries, frequency history and metrics. The listener is not called.
func (c *Cache[K, V]) Clear() {
	c.store.Clear()
	c.admitter.Clear()
	c.counters.reset()
	c.recorder.Size(0)
}

// Range calls fn for every live entry from most to least recently used until fn returns false.
// fn must not mutate the cache.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	now := c.now()
	c.store.Walk(func(_ int32, e *model.Entry[K, V]) bool {
		if e.IsExpired(now) {
			return true
		}
		return fn(e.Key, e.Value)
	})
}

// Metrics returns a snapshot of the counters, or false when metrics are disabled.
func (c *Cache[K, V]) Metrics() (Metrics, bool) { return c.counters.snapshot() }

func (c *Cache[K, V]) ResetMetrics() { c.counters.reset() }

// Estimate returns the admission frequency estimate of key.
func (c *Cache[K, V]) Estimate(key K) uint8 { return c.admitter.Estimate(c.hasher(key)) }

// Agings returns how many times frequency history was halved.
func (c *Cache[K, V]) Agings() int64 { return c.admitter.Agings() }

// SweepExpired inspects up to limit entries from the least recently used end
// and expires those past their deadline. It returns the number of expired entries.
func (c *Cache[K, V]) SweepExpired(limit int) int {
	return c.sweep(c.now(), limit)
}

/**
 * Private API.
 */

func (c *Cache[K, V]) insert(key K, value V, ttl time.Duration) (prev V, replaced bool, err error) {
	now := c.now()
	h := c.hasher(key)
	c.admitter.Record(h)

	if i, ok := c.store.Lookup(key); ok {
		e := c.store.At(i)
		if e.IsExpired(now) {
			c.evict(i, EvictTTL)
		} else {
			prev = e.Value
			e.Value = value
			e.SetTTL(now, ttl)
			c.store.Touch(i)
			c.counters.update()
			c.recorder.Update()
			return prev, true, nil
		}
	}

	if c.store.IsFull() && c.sweepOnInsert {
		c.sweep(now, c.sweepBatch)
	}

	if c.store.IsFull() {
		vi, _ := c.store.Victim()
		victim := c.store.At(vi)
		switch {
		case victim.IsExpired(now):
			c.evict(vi, EvictTTL)
		case c.admitter.Allow(h, victim.Hash):
			c.evict(vi, EvictPolicy)
		default:
			c.counters.reject()
			c.recorder.Reject()
			return prev, false, ErrRejected
		}
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = now + ttl.Nanoseconds()
	}
	c.store.Insert(key, value, h, expiresAt)
	c.counters.insert()
	c.recorder.Insert()
	c.recorder.Size(c.store.Len())
	return prev, false, nil
}

// access is the shared read path of Get and GetMut.
func (c *Cache[K, V]) access(key K) (*model.Entry[K, V], bool) {
	c.admitter.Record(c.hasher(key))

	i, ok := c.live(key)
	if !ok {
		c.counters.miss()
		c.recorder.Miss()
		return nil, false
	}
	c.store.Touch(i)
	c.counters.hit()
	c.recorder.Hit()
	return c.store.At(i), true
}

// live resolves key to a slot, expiring it first if its deadline has passed.
func (c *Cache[K, V]) live(key K) (int32, bool) {
	i, ok := c.store.Lookup(key)
	if !ok {
		return 0, false
	}
	if e := c.store.At(i); e.ExpiresAt != 0 && e.IsExpired(c.now()) {
		c.evict(i, EvictTTL)
		return 0, false
	}
	return i, true
}

// evict detaches slot i, accounts it and notifies the listener last,
// so a panicking listener leaves the store consistent.
func (c *Cache[K, V]) evict(i int32, reason EvictReason) {
	e := c.store.Delete(i)
	c.counters.evict()
	c.recorder.Evict(reason)
	c.recorder.Size(c.store.Len())
	c.listener.OnEvict(e.Key, e.Value)
}

func (c *Cache[K, V]) sweep(now int64, limit int) (expired int) {
	if limit <= 0 {
		return 0
	}
	inspected := 0
	c.store.WalkOldest(func(i int32, e *model.Entry[K, V]) bool {
		if e.IsExpired(now) {
			c.evict(i, EvictTTL)
			expired++
		}
		inspected++
		return inspected < limit
	})
	return expired
}

func (c *Cache[K, V]) now() int64 {
	return c.clock.Now().UnixNano()
}

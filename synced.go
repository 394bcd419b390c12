package lfucache

import (
	"context"
	"errors"
	"fmt"
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/Borislavv/go-lfu-cache/internal/cache"
	"github.com/Borislavv/go-lfu-cache/internal/lifetimer"
	"github.com/Borislavv/go-lfu-cache/internal/shared/cachedtime"
	"github.com/Borislavv/go-lfu-cache/internal/telemetry"
	"github.com/rs/zerolog"
	"sync"
	"time"
)

// Synced is a mutex guarded cache owning the optional background workers:
// the expired-entry sweeper (lifetime.rate) and periodic stats logs (db.stat_logs_enabled).
//
// The eviction listener runs under the mutex and must not call back into the cache.
type Synced[K comparable, V any] struct {
	mu sync.Mutex
	c  *cache.Cache[K, V]

	lifetimer lifetimer.Lifetimer
	telemetry telemetry.Logger
	logger    zerolog.Logger

	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// NewSynced builds a concurrent cache. Background workers stop when ctx is done or on Close.
func NewSynced[K comparable, V any](ctx context.Context, cfg *config.Cache, opts ...Option[K, V]) (*Synced[K, V], error) {
	if cfg == nil {
		cfg = &config.Cache{}
	}
	o := applyOptions(opts)

	ctx, cancel := context.WithCancel(ctx)
	if cfg.DB.CacheTimeEnabled && o.core.Clock == nil {
		o.core.Clock = cachedtime.New(ctx, cachedtime.DefaultResolution)
	}

	c, err := cache.New[K, V](cfg, o.core)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Synced[K, V]{c: c, logger: o.logger, cancel: cancel}
	s.lifetimer = lifetimer.New(ctx, cfg.Lifetime, o.logger, s)
	s.telemetry = telemetry.New(ctx, cfg, o.logger, s, s.lifetimer)

	o.logger.Info().
		Int("capacity", cfg.DB.Capacity).
		Bool("admission_control", cfg.AdmissionControl.Enabled()).
		Bool("metrics", cfg.DB.MetricsEnabled).
		Bool("cache_time", cfg.DB.CacheTimeEnabled).
		Msg("cache is running")

	return s, nil
}

func (s *Synced[K, V]) Insert(key K, value V) (prev V, replaced bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Insert(key, value)
}

func (s *Synced[K, V]) InsertWithTTL(key K, value V, ttl time.Duration) (prev V, replaced bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.InsertWithTTL(key, value, ttl)
}

func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(key)
}

// Update runs fn on the stored value under the lock. It is the concurrent counterpart
// of Cache.GetMut and has the same accounting as Get. It reports whether key was live.
func (s *Synced[K, V]) Update(key K, fn func(value *V)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.c.GetMut(key)
	if ok {
		fn(p)
	}
	return ok
}

func (s *Synced[K, V]) Remove(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove(key)
}

func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Contains(key)
}

func (s *Synced[K, V]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.IsEmpty()
}

func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

func (s *Synced[K, V]) Capacity() int { return s.c.Capacity() }

func (s *Synced[K, V]) RoomLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.RoomLeft()
}

func (s *Synced[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Clear()
}

// Range holds the lock for the whole walk; fn must not call back into the cache.
func (s *Synced[K, V]) Range(fn func(key K, value V) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Range(fn)
}

func (s *Synced[K, V]) Metrics() (Metrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Metrics()
}

func (s *Synced[K, V]) ResetMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.ResetMetrics()
}

func (s *Synced[K, V]) Estimate(key K) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Estimate(key)
}

func (s *Synced[K, V]) Agings() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Agings()
}

func (s *Synced[K, V]) SweepExpired(limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.SweepExpired(limit)
}

// Close stops background workers and waits for them. It is idempotent.
// The cache itself stays usable.
func (s *Synced[K, V]) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		if err := errors.Join(s.lifetimer.Close(), s.telemetry.Close()); err != nil {
			s.closeErr = fmt.Errorf("close cache workers: %w", err)
		}
		s.logger.Info().Msg("cache is stopped")
	})
	return s.closeErr
}

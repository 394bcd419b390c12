package lifetimer

import (
	"context"
	"errors"
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/Borislavv/go-lfu-cache/internal/shared/rate"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sweeper is the part of the cache the lifetimer drives.
// Implementations must be safe for concurrent use.
type Sweeper interface {
	// SweepExpired expires up to limit stale entries from the cold end and returns how many it removed.
	SweepExpired(limit int) int
	Len() int
}

type Lifetimer interface {
	LifetimerMetrics() (swept, scans, hits, misses int64)
	Close() error
}

// LifetimeWorker periodically reclaims expired entries that nobody reads anymore.
type LifetimeWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.LifetimerCfg
	sweeper  Sweeper
	logger   zerolog.Logger
	jitter   *rate.Jitter
	counters *lifetimerCounters
	done     chan struct{}
}

// New starts the background sweeper, or returns a NoOpLifetimer when it is disabled.
func New(ctx context.Context, cfg *config.LifetimerCfg, logger zerolog.Logger, sweeper Sweeper) Lifetimer {
	if !cfg.Enabled() || !cfg.IsBackgroundSweepEnabled {
		return NoOpLifetimer{}
	}

	ctx, cancel := context.WithCancel(ctx)

	return (&LifetimeWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		sweeper:  sweeper,
		logger:   logger,
		jitter:   rate.NewJitter(ctx, cfg.Rate),
		counters: newLifetimerCounters(),
		done:     make(chan struct{}),
	}).run()
}

func (w *LifetimeWorker) LifetimerMetrics() (swept, scans, hits, misses int64) {
	return w.counters.snapshot()
}

// Close stops the worker and waits until no sweep is in flight.
func (w *LifetimeWorker) Close() error {
	w.cancel()
	<-w.done
	return nil
}

func (w *LifetimeWorker) run() *LifetimeWorker {
	w.logger.Info().Int("rate", w.jitter.Limit()).Int("batch", w.cfg.SweepBatch).Msg("lifetimer is running")

	g, gctx := errgroup.WithContext(w.ctx)
	g.Go(func() error { return w.provider(gctx) })

	go func() {
		defer close(w.done)
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error().Err(err).Msg("lifetimer stopped unexpectedly")
			return
		}
		w.logger.Info().Msg("lifetimer is stopped")
	}()

	return w
}

func (w *LifetimeWorker) provider(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-w.jitter.Chan():
			if !ok {
				return ctx.Err()
			}
			w.sweep()
		}
	}
}

func (w *LifetimeWorker) sweep() {
	if w.sweeper.Len() == 0 {
		return
	}
	w.counters.scans.Add(1)

	n := w.sweeper.SweepExpired(w.cfg.SweepBatch)
	if n == 0 {
		w.counters.scanMisses.Add(1)
		return
	}
	w.counters.scanHits.Add(1)
	w.counters.swept.Add(int64(n))
	w.logger.Debug().Int("swept", n).Msg("expired entries reclaimed")
}

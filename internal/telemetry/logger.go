package telemetry

import (
	"context"
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/Borislavv/go-lfu-cache/internal/cache"
	"github.com/Borislavv/go-lfu-cache/internal/lifetimer"
	"github.com/rs/zerolog"
	"time"
)

// Source is the read-only view of the cache sampled by the stats logger.
// Implementations must be safe for concurrent use.
type Source interface {
	Metrics() (cache.Metrics, bool)
	Agings() int64
	Len() int
	Capacity() int
}

type Logger interface {
	Close() error
}

// Logs periodically writes per-interval deltas of the cache counters.
type Logs struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       *config.Cache
	logger    zerolog.Logger
	source    Source
	lifetimer lifetimer.Lifetimer
	interval  time.Duration
	done      chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.Cache,
	logger zerolog.Logger,
	source Source,
	lifetimer lifetimer.Lifetimer,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		logger:    logger,
		source:    source,
		lifetimer: lifetimer,
		interval:  cfg.DB.TelemetryLogsInterval,
		done:      make(chan struct{}),
	}).run()
}

// Close stops logging and waits for the loop to exit.
func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.DB.IsTelemetryLogsEnabled && l.interval > 0 {
		go l.loop()
	} else {
		close(l.done)
	}
	return l
}

func (l *Logs) loop() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	s := newSampler(l.source, l.lifetimer)
	prev := s.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			if l.cfg.DB.MetricsEnabled {
				l.logger.Info().
					Str("interval", l.interval.String()).
					Uint64("hits", d.hits).
					Uint64("misses", d.misses).
					Float64("hit_ratio", d.ratio()).
					Uint64("inserts", d.inserts).
					Uint64("updates", d.updates).
					Uint64("evictions", d.evictions).
					Uint64("removals", d.removals).
					Uint64("rejections", d.rejections).
					Msg("cache")
			}

			if l.cfg.AdmissionControl.Enabled() {
				l.logger.Info().
					Str("interval", l.interval.String()).
					Uint64("agings", d.agings).
					Int("sample_size", l.cfg.AdmissionControl.Window()).
					Msg("admission_controller")
			}

			if l.cfg.Lifetime.Enabled() && l.cfg.Lifetime.IsBackgroundSweepEnabled {
				l.logger.Info().
					Str("interval", l.interval.String()).
					Uint64("swept", d.lifetimeSwept).
					Uint64("scans", d.lifetimeScans).
					Uint64("hits", d.lifetimeHits).
					Uint64("misses", d.lifetimeMisses).
					Msg("lifetime_manager")
			}

			entries, capacity := l.source.Len(), l.source.Capacity()
			l.logger.Info().
				Str("interval", l.interval.String()).
				Int("entries", entries).
				Int("capacity", capacity).
				Int("room_left", capacity-entries).
				Msg("storage")
		}
	}
}

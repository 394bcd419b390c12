package telemetry

import (
	"github.com/Borislavv/go-lfu-cache/internal/cache"
	"github.com/Borislavv/go-lfu-cache/internal/lifetimer"
)

type sampler struct {
	source    Source
	lifetimer lifetimer.Lifetimer
}

func newSampler(src Source, lt lifetimer.Lifetimer) sampler {
	return sampler{source: src, lifetimer: lt}
}

// snapshot holds cumulative counters (monotonic unless reset by the owner).
type snapshot struct {
	hits       uint64
	misses     uint64
	inserts    uint64
	updates    uint64
	evictions  uint64
	removals   uint64
	rejections uint64

	agings uint64

	lifetimeSwept  uint64
	lifetimeScans  uint64
	lifetimeHits   uint64
	lifetimeMisses uint64
}

func (s sampler) snapshot() snapshot {
	m, _ := s.source.Metrics()
	swept, scans, hits, misses := s.lifetimer.LifetimerMetrics()

	return snapshot{
		hits:       uint64(max(m.Hits, 0)),
		misses:     uint64(max(m.Misses, 0)),
		inserts:    uint64(max(m.Inserts, 0)),
		updates:    uint64(max(m.Updates, 0)),
		evictions:  uint64(max(m.Evictions, 0)),
		removals:   uint64(max(m.Removals, 0)),
		rejections: uint64(max(m.Rejections, 0)),

		agings: uint64(max(s.source.Agings(), 0)),

		lifetimeSwept:  uint64(max(swept, 0)),
		lifetimeScans:  uint64(max(scans, 0)),
		lifetimeHits:   uint64(max(hits, 0)),
		lifetimeMisses: uint64(max(misses, 0)),
	}
}

// ratio is the hit ratio of the interval.
func (s snapshot) ratio() float64 {
	return cache.Metrics{Hits: int64(s.hits), Misses: int64(s.misses)}.Ratio()
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:       delta(prev.hits, cur.hits),
		misses:     delta(prev.misses, cur.misses),
		inserts:    delta(prev.inserts, cur.inserts),
		updates:    delta(prev.updates, cur.updates),
		evictions:  delta(prev.evictions, cur.evictions),
		removals:   delta(prev.removals, cur.removals),
		rejections: delta(prev.rejections, cur.rejections),

		agings: delta(prev.agings, cur.agings),

		lifetimeSwept:  delta(prev.lifetimeSwept, cur.lifetimeSwept),
		lifetimeScans:  delta(prev.lifetimeScans, cur.lifetimeScans),
		lifetimeHits:   delta(prev.lifetimeHits, cur.lifetimeHits),
		lifetimeMisses: delta(prev.lifetimeMisses, cur.lifetimeMisses),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}

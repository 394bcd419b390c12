package lifetimer

import "sync/atomic"

type lifetimerCounters struct {
	swept      atomic.Int64 // entries expired by background sweeps
	scans      atomic.Int64 // total sweeps
	scanHits   atomic.Int64 // sweeps that expired at least one entry
	scanMisses atomic.Int64 // sweeps that found nothing to expire
}

func newLifetimerCounters() *lifetimerCounters {
	return &lifetimerCounters{}
}

func (c *lifetimerCounters) snapshot() (swept, scans, hits, misses int64) {
	swept = c.swept.Load()
	scans = c.scans.Load()
	hits = c.scanHits.Load()
	misses = c.scanMisses.Load()
	return
}

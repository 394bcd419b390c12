package lifetimer

// NoOpLifetimer is used when background sweeping is disabled.
// Expired entries are then reclaimed lazily on access only.
type NoOpLifetimer struct{}

// LifetimerMetrics always returns zero values.
func (NoOpLifetimer) LifetimerMetrics() (swept, scans, hits, misses int64) {
	return 0, 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpLifetimer) Close() error {
	return nil
}

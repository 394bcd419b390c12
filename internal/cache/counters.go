package cache

// Metrics is a point-in-time copy of the cache counters.
type Metrics struct {
	Hits       int64
	Misses     int64
	Inserts    int64
	Updates    int64
	Evictions  int64
	Removals   int64
	Rejections int64
}

// Ratio returns hits / (hits + misses), or 0 before any lookup.
func (m Metrics) Ratio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// counters is nil when metrics are disabled, so every method is a no-op on a nil receiver.
type counters struct {
	m Metrics
}

func newCounters(enabled bool) *counters {
	if !enabled {
		return nil
	}
	return &counters{}
}

func (c *counters) hit() {
	if c != nil {
		c.m.Hits++
	}
}

func (c *counters) miss() {
	if c != nil {
		c.m.Misses++
	}
}

func (c *counters) insert() {
	if c != nil {
		c.m.Inserts++
	}
}

func (c *counters) update() {
	if c != nil {
		c.m.Updates++
	}
}

func (c *counters) evict() {
	if c != nil {
		c.m.Evictions++
	}
}

func (c *counters) remove() {
	if c != nil {
		c.m.Removals++
	}
}

func (c *counters) reject() {
	if c != nil {
		c.m.Rejections++
	}
}

func (c *counters) snapshot() (Metrics, bool) {
	if c == nil {
		return Metrics{}, false
	}
	return c.m, true
}

func (c *counters) reset() {
	if c != nil {
		c.m = Metrics{}
	}
}

package config

// LifetimerCfg configures proactive reclamation of expired entries.
// Expiration itself is always checked lazily on access; this section only adds sweeping on top of it.
type LifetimerCfg struct {
	// SweepOnInsert expires up to SweepBatch stale entries (oldest first)
	// before a full cache runs admission for a new key.
	SweepOnInsert bool `yaml:"sweep_on_insert"`

	// SweepBatch bounds how many entries a single sweep inspects.
	// Example: 64.
	SweepBatch int `yaml:"sweep_batch"`

	// Rate is the number of background sweeps per second performed by the synchronized cache.
	// Zero disables the background sweeper.
	// Example: 10.
	Rate int `yaml:"rate"`

	// IsBackgroundSweepEnabled is derived from Rate during initialization and is not read from YAML.
	IsBackgroundSweepEnabled bool `yaml:"-"` // virtual: computed during init
}

func (cfg *LifetimerCfg) Enabled() bool {
	return cfg != nil
}

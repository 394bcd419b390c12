package config

// AdmissionControlCfg configures TinyLFU admission control.
// It estimates item popularity via a count-min sketch guarded by a doorkeeper
// to decide whether a new item should displace the current eviction victim.
//
// Note: when the section is nil, a NoOp admission controller is used (items are admitted unconditionally).
type AdmissionControlCfg struct {
	// SampleSize is the aging window: after this many recorded accesses
	// all sketch counters are halved and the doorkeeper is cleared.
	// Zero means SampleMultiplier * Capacity, see Window.
	// It does not size the tables; those follow Capacity, MinTableLen and DoorBitsPerCounter.
	SampleSize int `yaml:"sample_size"`

	// SampleMultiplier derives SampleSize from Capacity when SampleSize is not set.
	// Default: 10.
	SampleMultiplier int `yaml:"sample_multiplier"`

	// MinTableLen sets a lower bound for the number of sketch counters.
	// This prevents undersized tables when Capacity is low.
	MinTableLen int `yaml:"min_table_len"`

	// DoorBitsPerCounter configures the size of the doorkeeper bitset relative to the sketch.
	// More bits reduce false positives but increase memory usage.
	DoorBitsPerCounter int `yaml:"door_bits_per_counter"`

	// Capacity is copied from DBCfg.Capacity during AdjustConfig and is not read from YAML.
	Capacity int `yaml:"-"` // virtual: computed during init
}

func (cfg *AdmissionControlCfg) Enabled() bool {
	return cfg != nil
}

// Window returns the effective aging window. It is derived on every call
// so a config reused with another capacity never keeps a stale value.
func (cfg *AdmissionControlCfg) Window() int {
	if cfg.SampleSize > 0 {
		return cfg.SampleSize
	}
	multiplier := cfg.SampleMultiplier
	if multiplier <= 0 {
		multiplier = defaultSampleMultiplier
	}
	return multiplier * max(cfg.Capacity, 1)
}

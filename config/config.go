package config

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

var (
	ErrInvalidCapacity         = errors.New("capacity must be in range (0, MaxCapacity]")
	ErrInvalidSampleSize       = errors.New("sample size must not be negative")
	ErrInvalidAdmissionControl = errors.New("admission control tables out of range")
)

// MaxCapacity bounds the entry count so arena slots fit int32 and the
// doorkeeper bitset (table length * door bits per counter) fits uint32.
const MaxCapacity = 1 << 26

const maxDoorBitsPerCounter = 32

const (
	defaultSampleMultiplier      = 10
	defaultMinTableLen           = 64
	defaultDoorBitsPerCounter    = 8
	defaultSweepBatch            = 64
	defaultTelemetryLogsInterval = 5 * time.Second
)

// Cache groups configuration of all cache subsystems.
// Optional components are disabled by setting them to nil.
type Cache struct {
	DB DBCfg `yaml:"db"`

	// AdmissionControl configures TinyLFU admission.
	// If nil, every candidate is admitted and the cache behaves as a plain LRU.
	AdmissionControl *AdmissionControlCfg `yaml:"admission_control"`

	// Lifetime configures proactive reclamation of expired entries.
	// If nil, expiration is purely lazy (checked on access only).
	Lifetime *LifetimerCfg `yaml:"lifetime"`
}

// AdjustConfig fills defaults and derives virtual fields. It is idempotent.
func (cfg *Cache) AdjustConfig() {
	if cfg.DB.TelemetryLogsInterval <= 0 {
		cfg.DB.TelemetryLogsInterval = defaultTelemetryLogsInterval
	}

	if cfg.AdmissionControl.Enabled() {
		ac := cfg.AdmissionControl
		ac.Capacity = cfg.DB.Capacity
		if ac.SampleMultiplier <= 0 {
			ac.SampleMultiplier = defaultSampleMultiplier
		}
		if ac.MinTableLen <= 0 {
			ac.MinTableLen = defaultMinTableLen
		}
		if ac.DoorBitsPerCounter <= 0 {
			ac.DoorBitsPerCounter = defaultDoorBitsPerCounter
		}
	}

	if cfg.Lifetime.Enabled() {
		if cfg.Lifetime.SweepBatch <= 0 {
			cfg.Lifetime.SweepBatch = defaultSweepBatch
		}
		cfg.Lifetime.IsBackgroundSweepEnabled = cfg.Lifetime.Rate > 0
	}
}

// Validate reports the first configuration error found.
func (cfg *Cache) Validate() error {
	if cfg.DB.Capacity <= 0 || cfg.DB.Capacity > MaxCapacity {
		return fmt.Errorf("db.capacity=%d: %w", cfg.DB.Capacity, ErrInvalidCapacity)
	}
	if ac := cfg.AdmissionControl; ac.Enabled() {
		if ac.SampleSize < 0 {
			return fmt.Errorf("admission_control.sample_size=%d: %w", ac.SampleSize, ErrInvalidSampleSize)
		}
		if ac.MinTableLen > MaxCapacity {
			return fmt.Errorf("admission_control.min_table_len=%d: %w", ac.MinTableLen, ErrInvalidAdmissionControl)
		}
		if ac.DoorBitsPerCounter > maxDoorBitsPerCounter {
			return fmt.Errorf("admission_control.door_bits_per_counter=%d: %w", ac.DoorBitsPerCounter, ErrInvalidAdmissionControl)
		}
	}
	return nil
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Cache
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Cache{}
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

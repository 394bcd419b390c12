package config

import "time"

type DBCfg struct {
	// Capacity is the maximum number of live entries.
	Capacity int `yaml:"capacity"`

	// MetricsEnabled turns on hit/miss/insert/update/eviction counters.
	// When disabled no bookkeeping is paid at all.
	MetricsEnabled bool `yaml:"metrics_enabled"`

	IsTelemetryLogsEnabled bool          `yaml:"stat_logs_enabled"`
	TelemetryLogsInterval  time.Duration `yaml:"stat_logs_interval"`

	// CacheTimeEnabled switches TTL checks to a coarse clock refreshed every 10ms.
	CacheTimeEnabled bool `yaml:"cache_time_enabled"`
}

package lfucache

import (
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/rs/zerolog"
	"os"
	"time"
)

func defaultCfg() *config.Cache {
	return &config.Cache{
		DB: config.DBCfg{
			Capacity:               10,
			MetricsEnabled:         true,
			IsTelemetryLogsEnabled: true,
			TelemetryLogsInterval:  time.Second * 5,
		},
		AdmissionControl: &config.AdmissionControlCfg{},
	}
}

func sweeperCfg() *config.Cache {
	c := defaultCfg()
	c.Lifetime = &config.LifetimerCfg{
		Rate:       1000,
		SweepBatch: 64,
	}
	return c
}

func defaultLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("LFU_TEST_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().
		Timestamp().
		Str("service", "lfuCache").
		Str("env", "test").
		Logger()
}

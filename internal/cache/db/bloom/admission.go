package bloom

import (
	"github.com/Borislavv/go-lfu-cache/config"
)

// AdmissionControl decides whether a candidate key may displace a victim.
// Keys are passed as 64-bit hashes.
type AdmissionControl interface {
	// Record observes one access of h.
	Record(h uint64)
	// Allow reports whether candidate should replace victim.
	Allow(candidate, victim uint64) bool
	// Estimate returns the approximate frequency of h in the current window.
	Estimate(h uint64) uint8
	// Reset forces aging now.
	Reset()
	// Clear forgets everything.
	Clear()
	// Agings returns how many times the frequency window was aged.
	Agings() int64
}

func NewAdmissionControl(cfg *config.AdmissionControlCfg) AdmissionControl {
	if cfg.Enabled() {
		return newTinyLFU(cfg)
	} else {
		return newNoOp()
	}
}

package bloom

import (
	"github.com/Borislavv/go-lfu-cache/config"
)

// TinyLFU combines the frequency sketch with the doorkeeper and owns the aging window.
//
// Not safe for concurrent use.
type TinyLFU struct {
	// 4-bit counters packed in 64-bit words (16 counters per word).
	sketch sketch
	// simple Bloom-like bitset; reset with sketch aging.
	door doorkeeper
	// adds is the number of recorded accesses in the current window.
	adds int
	// sampleSize is the window length: once adds reaches it the sketch is halved.
	sampleSize int
	agings     int64
}

// accessesPerCounter is how many recorded accesses of one window share a sketch counter.
const accessesPerCounter = 10

func newTinyLFU(cfg *config.AdmissionControlCfg) *TinyLFU {
	window := cfg.Window()

	// Table length is a power-of-two covering both the capacity and the window,
	// clamped below by MinTableLen and above by MaxCapacity.
	counters := max(cfg.Capacity, cfg.MinTableLen, window/accessesPerCounter, 1)
	tblLen := nextPow2(min(counters, config.MaxCapacity))

	doorBitsPerCounter := cfg.DoorBitsPerCounter
	if doorBitsPerCounter <= 0 {
		doorBitsPerCounter = 1
	}

	t := &TinyLFU{sampleSize: window}
	t.sketch.init(uint32(tblLen))
	t.door.init(uint32(tblLen * doorBitsPerCounter))
	return t
}

// Record observes a key access. The doorkeeper gates noise: first sight -> set bits only,
// second (or false positive) sight -> increment the sketch.
// Every call counts towards the aging window, including doorkeeper-only ones.
func (t *TinyLFU) Record(h uint64) {
	if t.adds >= t.sampleSize {
		t.age()
	}
	if t.door.seenOrAdd(h) {
		t.sketch.increment(h)
	}
	t.adds++
}

// Allow returns true if the candidate should replace the victim.
// Strict preference: equal estimates keep the victim, which includes
// distinct keys whose hashes collide.
func (t *TinyLFU) Allow(candidate, victim uint64) bool {
	return t.Estimate(candidate) > t.Estimate(victim)
}

// Estimate is the sketch estimate plus one for the access absorbed by the doorkeeper.
func (t *TinyLFU) Estimate(h uint64) uint8 {
	est := t.sketch.estimate(h)
	if t.door.probablySeen(h) {
		est++
	}
	return est
}

// Reset forces aging now (useful for tests or ops hooks).
func (t *TinyLFU) Reset() { t.age() }

func (t *TinyLFU) Clear() {
	t.sketch.clear()
	t.door.reset()
	t.adds = 0
}

func (t *TinyLFU) Agings() int64 { return t.agings }

func (t *TinyLFU) age() {
	t.sketch.halve()
	t.door.reset()
	t.adds = 0
	t.agings++
}

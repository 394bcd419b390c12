package bloom

import (
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestTinyLFU(capacity, sampleSize int) *TinyLFU {
	return newTinyLFU(&config.AdmissionControlCfg{
		Capacity:           capacity,
		SampleSize:         sampleSize,
		MinTableLen:        64,
		DoorBitsPerCounter: 8,
	})
}

// The first sighting is absorbed by the doorkeeper and still counts as one.
func TestTinyLFU_DoorkeeperGatesFirstSight(t *testing.T) {
	a := newTestTinyLFU(128, 1_000_000)
	h := mixKey(0xABC)

	require.Equal(t, uint8(0), a.Estimate(h))

	a.Record(h)
	require.Equal(t, uint8(0), a.sketch.estimate(h), "first sight must not touch the sketch")
	require.Equal(t, uint8(1), a.Estimate(h))

	a.Record(h)
	require.Equal(t, uint8(1), a.sketch.estimate(h))
	require.Equal(t, uint8(2), a.Estimate(h))
}

// Aging happens at the start of the record that finds the window full.
func TestTinyLFU_AgingTriggersAtSampleSize(t *testing.T) {
	a := newTestTinyLFU(128, 10)
	h := mixKey(0xFEED)

	for i := 0; i < 10; i++ {
		a.Record(h)
	}
	require.Equal(t, int64(0), a.Agings())
	require.Equal(t, uint8(10), a.Estimate(h))

	a.Record(h)
	require.Equal(t, int64(1), a.Agings())
	// sketch 9 halved to 4, doorkeeper cleared then re-set by this record.
	require.Equal(t, uint8(4), a.sketch.estimate(h))
	require.Equal(t, uint8(5), a.Estimate(h))
	require.Equal(t, 1, a.adds)
}

// Doorkeeper-only records count towards the window.
func TestTinyLFU_WindowCountsDoorkeeperOnlyRecords(t *testing.T) {
	a := newTestTinyLFU(128, 5)
	for i := 0; i < 5; i++ {
		a.Record(mixKey(uint64(1000 + i)))
	}
	require.Equal(t, int64(0), a.Agings())
	a.Record(mixKey(2000))
	require.Equal(t, int64(1), a.Agings())
}

// TestTinyLFU_Reset ages immediately and clears the doorkeeper.
func TestTinyLFU_Reset(t *testing.T) {
	a := newTestTinyLFU(128, 1_000_000)
	h := mixKey(0x42)
	for i := 0; i < 5; i++ {
		a.Record(h)
	}
	require.Equal(t, uint8(5), a.Estimate(h))

	a.Reset()
	require.Equal(t, int64(1), a.Agings())
	require.False(t, a.door.probablySeen(h))
	require.Equal(t, uint8(2), a.Estimate(h))
}

// TestTinyLFU_Clear forgets all history.
func TestTinyLFU_Clear(t *testing.T) {
	a := newTestTinyLFU(128, 1_000_000)
	h := mixKey(0x42)
	for i := 0; i < 5; i++ {
		a.Record(h)
	}
	a.Clear()
	require.Equal(t, uint8(0), a.Estimate(h))
	require.Equal(t, 0, a.adds)
}

// Ties keep the incumbent, colliding hashes included.
func TestTinyLFU_AllowStrictPreference(t *testing.T) {
	a := newTestTinyLFU(128, 1_000_000)
	c, v := mixKey(1), mixKey(2)

	require.False(t, a.Allow(c, v), "0 vs 0 must reject")
	require.False(t, a.Allow(c, c), "equal hashes tie and must reject")

	a.Record(c)
	a.Record(v)
	require.False(t, a.Allow(c, v), "1 vs 1 must reject")

	a.Record(c)
	require.True(t, a.Allow(c, v))
	require.False(t, a.Allow(v, c))

	for i := 0; i < 5; i++ {
		a.Record(c)
	}
	require.False(t, a.Allow(c, c), "a hot hash still ties with itself")
}

// Sample size falls back to multiplier * capacity.
func TestTinyLFU_DefaultSampleSize(t *testing.T) {
	a := newTinyLFU(&config.AdmissionControlCfg{Capacity: 100})
	require.Equal(t, 1000, a.sampleSize)

	a = newTinyLFU(&config.AdmissionControlCfg{Capacity: 100, SampleMultiplier: 3})
	require.Equal(t, 300, a.sampleSize)

	a = newTinyLFU(&config.AdmissionControlCfg{Capacity: 100, SampleSize: 7})
	require.Equal(t, 7, a.sampleSize)
}

// Table length is a power of two clamped by MinTableLen.
func TestTinyLFU_TableSizing(t *testing.T) {
	a := newTinyLFU(&config.AdmissionControlCfg{Capacity: 10, MinTableLen: 64, DoorBitsPerCounter: 8})
	require.Equal(t, uint32(63), a.sketch.mask)
	require.Equal(t, uint32(64*8-1), a.door.mask)

	a = newTinyLFU(&config.AdmissionControlCfg{Capacity: 1000, MinTableLen: 64, DoorBitsPerCounter: 8})
	require.Equal(t, uint32(1023), a.sketch.mask)
}

// A larger aging window widens the sketch and the doorkeeper with it.
func TestTinyLFU_TableFollowsWindow(t *testing.T) {
	a := newTinyLFU(&config.AdmissionControlCfg{Capacity: 100, SampleSize: 100_000, MinTableLen: 64, DoorBitsPerCounter: 8})
	require.Equal(t, uint32(16383), a.sketch.mask)
	require.Equal(t, uint32(16384*8-1), a.door.mask)
	require.Equal(t, 100_000, a.sampleSize)

	a = newTinyLFU(&config.AdmissionControlCfg{Capacity: 100, SampleSize: 50, MinTableLen: 64, DoorBitsPerCounter: 8})
	require.Equal(t, uint32(127), a.sketch.mask, "capacity still bounds the table from below")
}

// Unique stream should be rejected most of the time (doorkeeper prevents pollution).
func TestTinyLFU_UniqueStreamRejected(t *testing.T) {
	const capacity = 10_000
	a := newTestTinyLFU(capacity, 1_000_000)

	// Warm up victims: each seen twice (door + sketch).
	const warmN = 8000
	for i := 0; i < warmN; i++ {
		h := mixKey(uint64(0x300000 + i))
		a.Record(h)
		a.Record(h)
	}

	admits := 0
	const trials = 10_000
	for i := 0; i < trials; i++ {
		cand := mixKey(uint64(0x900000 + i))
		victim := mixKey(uint64(0x300000 + (i % warmN)))
		if a.Allow(cand, victim) {
			admits++
		}
	}
	rate := float64(admits) / float64(trials)
	require.Less(t, rate, 0.10, "unique stream admit rate too high: %.3f", rate)
}

// Hot candidates should replace cold victims; cold should not replace hot.
func TestTinyLFU_HotBeatsCold(t *testing.T) {
	const capacity = 10_000
	a := newTestTinyLFU(capacity, 1_000_000)

	const hotN, coldN = 200, 6000
	for i := 0; i < hotN; i++ {
		h := mixKey(uint64(0x100000 + i))
		for j := 0; j < 16; j++ {
			a.Record(h)
		}
	}
	for i := 0; i < coldN; i++ {
		a.Record(mixKey(uint64(0x200000 + i)))
	}

	hotWins, coldWins := 0, 0
	for i := 0; i < hotN; i++ {
		hot := mixKey(uint64(0x100000 + i))
		cold := mixKey(uint64(0x200000 + i))
		if a.Allow(hot, cold) {
			hotWins++
		}
		if a.Allow(cold, hot) {
			coldWins++
		}
	}
	require.GreaterOrEqual(t, float64(hotWins)/hotN, 0.85)
	require.LessOrEqual(t, float64(coldWins)/hotN, 0.15)
}

func TestTinyLFU_RecordZeroAllocs(t *testing.T) {
	a := newTestTinyLFU(1024, 1_000_000)
	h := mixKey(9)
	if got := testing.AllocsPerRun(10000, func() { a.Record(h) }); got != 0 {
		t.Fatalf("Record allocs: got %v want 0", got)
	}
	if got := testing.AllocsPerRun(10000, func() { _ = a.Allow(h, h+1) }); got != 0 {
		t.Fatalf("Allow allocs: got %v want 0", got)
	}
}

func BenchmarkTinyLFU_Record(b *testing.B) {
	a := newTestTinyLFU(1<<16, 10<<16)
	keys := make([]uint64, 1<<12)
	for i := range keys {
		keys[i] = mixKey(uint64(i))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Record(keys[i&(len(keys)-1)])
	}
}

func BenchmarkTinyLFU_Allow(b *testing.B) {
	a := newTestTinyLFU(1<<16, 10<<16)
	keys := make([]uint64, 1<<12)
	for i := range keys {
		keys[i] = mixKey(uint64(i))
		a.Record(keys[i])
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Allow(keys[i&(len(keys)-1)], keys[(i+1)&(len(keys)-1)])
	}
}

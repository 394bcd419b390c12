package bloom

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// The sketch should rank hot keys > cold keys.
func TestSketch_Ranking(t *testing.T) {
	var s sketch
	s.init(4096)

	// 100 hot keys with 12 hits each; 100 cold keys with 1 hit.
	const hotN, hotHits = 100, 12
	const coldN = 100

	for i := 0; i < hotN; i++ {
		h := mixKey(uint64(0x100000 + i))
		for j := 0; j < hotHits; j++ {
			s.increment(h)
		}
	}
	for i := 0; i < coldN; i++ {
		s.increment(mixKey(uint64(0x200000 + i)))
	}

	hotVals := make([]uint8, hotN)
	coldVals := make([]uint8, coldN)
	for i := 0; i < hotN; i++ {
		hotVals[i] = s.estimate(mixKey(uint64(0x100000 + i)))
	}
	for i := 0; i < coldN; i++ {
		coldVals[i] = s.estimate(mixKey(uint64(0x200000 + i)))
	}

	// Count-min never under-estimates.
	for _, v := range hotVals {
		require.GreaterOrEqual(t, v, uint8(hotHits))
	}
	require.Greater(t, median(hotVals), median(coldVals))
}

// Counters saturate at 15 and never spill into neighbouring lanes.
func TestSketch_SaturatesWithoutWraparound(t *testing.T) {
	var s sketch
	s.init(256)

	h := mixKey(7)
	for i := 0; i < 1000; i++ {
		s.increment(h)
	}
	require.Equal(t, uint8(15), s.estimate(h))

	i0, i1, i2, i3 := s.indices(h)
	lanes := map[uint32]bool{i0: true, i1: true, i2: true, i3: true}
	for idx := uint32(0); idx <= s.mask; idx++ {
		if lanes[idx] {
			require.Equal(t, uint8(15), s.getAt(idx), "lane %d", idx)
		} else {
			require.Equal(t, uint8(0), s.getAt(idx), "lane %d must stay untouched", idx)
		}
	}
}

// Halving divides every lane by two rounding down and never underflows.
func TestSketch_HalveRoundsDown(t *testing.T) {
	var s sketch
	s.init(1024)

	for i := 0; i < 300; i++ {
		h := mixKey(uint64(i))
		for j := 0; j <= i%17; j++ {
			s.increment(h)
		}
	}

	before := make([]uint8, s.mask+1)
	for idx := range before {
		before[idx] = s.getAt(uint32(idx))
	}
	estimates := make([]uint8, 300)
	for i := range estimates {
		estimates[i] = s.estimate(mixKey(uint64(i)))
	}

	s.halve()

	for idx, v := range before {
		require.Equal(t, v/2, s.getAt(uint32(idx)), "lane %d", idx)
	}
	for i, v := range estimates {
		require.LessOrEqual(t, s.estimate(mixKey(uint64(i))), v)
	}

	// Repeated halving bottoms out at zero.
	for i := 0; i < 5; i++ {
		s.halve()
	}
	for idx := uint32(0); idx <= s.mask; idx++ {
		require.Equal(t, uint8(0), s.getAt(idx))
	}
}

func TestSketch_InitPanicsOnNonPow2(t *testing.T) {
	var s sketch
	require.Panics(t, func() { s.init(100) })
	require.Panics(t, func() { s.init(0) })
}

func median(xs []uint8) uint8 {
	cp := append([]uint8(nil), xs...)
	for i := 0; i < len(cp)-1; i++ {
		for j := i + 1; j < len(cp); j++ {
			if cp[j] < cp[i] {
				cp[i], cp[j] = cp[j], cp[i]
			}
		}
	}
	return cp[len(cp)/2]
}

// mixKey is a stable generator of 64-bit "hashes" from an integer id.
func mixKey(x uint64) uint64 { return mix64(x) }

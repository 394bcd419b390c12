package bloom

// sketch is a TinyLFU-style Count-Min Sketch using 4-bit (nibble) counters.
// Each uint64 holds 16 packed nibbles. For each key we touch 4 independent
// indices derived from a single 64-bit hash. The sketch does not age on its own:
// the owning TinyLFU calls halve() once its sample window is exhausted.
//
// Not safe for concurrent use.
type sketch struct {
	// words holds packed 4-bit counters: 16 counters per uint64.
	words []uint64
	// mask is numCounters-1; numCounters must be a power of two.
	mask uint32
}

const (
	nibbleMask    = 0xF                // one 4-bit lane mask
	maxCounter    = nibbleMask         // saturation point of a lane
	maskNibbles64 = 0x7777777777777777 // keeps nibble boundaries after right-shift
)

// init allocates the table with numCounters lanes (must be power of two).
func (s *sketch) init(numCounters uint32) {
	if numCounters == 0 || (numCounters&(numCounters-1)) != 0 {
		panic("sketch: numCounters must be power-of-two and > 0")
	}
	wordCount := (uint64(numCounters) + 15) / 16 // 16 nibbles per uint64
	s.words = make([]uint64, wordCount)
	s.mask = numCounters - 1
}

// indices derives the 4 lanes of hash h.
func (s *sketch) indices(h uint64) (i0, i1, i2, i3 uint32) {
	i0 = uint32(h) & s.mask // eq. ->  uint32(h) % (s.mask + 1)
	h = mix64(h)
	i1 = uint32(h) & s.mask
	h = mix64(h)
	i2 = uint32(h) & s.mask
	h = mix64(h)
	i3 = uint32(h) & s.mask
	return
}

// increment bumps the 4 lanes of h, each saturating at 15.
func (s *sketch) increment(h uint64) {
	i0, i1, i2, i3 := s.indices(h)
	s.incAt(i0)
	s.incAt(i1)
	s.incAt(i2)
	s.incAt(i3)
}

// estimate returns the min of the 4 lanes of h.
func (s *sketch) estimate(h uint64) uint8 {
	i0, i1, i2, i3 := s.indices(h)
	return min(s.getAt(i0), s.getAt(i1), s.getAt(i2), s.getAt(i3))
}

func (s *sketch) incAt(idx uint32) {
	w, sh := s.wordShift(idx)
	if (s.words[w]>>sh)&nibbleMask == maxCounter {
		return // saturated
	}
	s.words[w] += 1 << sh
}

func (s *sketch) getAt(idx uint32) uint8 {
	w, sh := s.wordShift(idx)
	return uint8((s.words[w] >> sh) & nibbleMask)
}

// wordShift maps a counter index to (word index, bit shift) inside words[].
func (s *sketch) wordShift(idx uint32) (uint32, uint) {
	// 16 nibbles per word => word = idx / 16, shift = (idx % 16) * 4
	return idx >> 4, uint((idx & 0xF) << 2)
}

// halve ages every lane: new = old >> 1, rounding down.
// The mask drops the bit that would otherwise leak from the neighbouring nibble.
func (s *sketch) halve() {
	for i := range s.words {
		s.words[i] = (s.words[i] >> 1) & maskNibbles64
	}
}

func (s *sketch) clear() {
	clear(s.words)
}

package bloom

// doorkeeper is a lightweight, Bloom-like filter placed in front of the sketch.
// It tracks "probably seen" keys using 3 bit positions per key and is cleared
// every time the sketch ages, so membership means "seen in the current window".
//
// Not safe for concurrent use.
type doorkeeper struct {
	bits []uint64 // packed bit-array (64 bits per word)
	mask uint32   // index mask: (numBitsRoundedToPow2 - 1)
}

// init prepares a bit-array sized to the next power of two, so we can
// index with a cheap bitmask (h & mask). totalBits may be any positive value.
func (d *doorkeeper) init(totalBits uint32) {
	if totalBits < 64 {
		totalBits = 64
	}
	n := nextPow2(int(totalBits))
	d.bits = make([]uint64, (n+63)/64)
	d.mask = uint32(n - 1)
}

// reset clears all bits. O(len(bits)), called once per aging window.
func (d *doorkeeper) reset() {
	clear(d.bits)
}

func (d *doorkeeper) indices(h uint64) (i0, i1, i2 uint32) {
	// Offset the seed so doorkeeper probes do not mirror the sketch lanes.
	h = mix64(h ^ 0xD00D)
	i0 = uint32(h) & d.mask
	h = mix64(h)
	i1 = uint32(h) & d.mask
	h = mix64(h)
	i2 = uint32(h) & d.mask
	return
}

// probablySeen returns true if all 3 probed bits are set. Read-only.
func (d *doorkeeper) probablySeen(h uint64) bool {
	i0, i1, i2 := d.indices(h)
	return d.get(i0) && d.get(i1) && d.get(i2)
}

// seenOrAdd returns true if the key was probably seen already. Otherwise,
// it sets the 3 bits and returns false.
func (d *doorkeeper) seenOrAdd(h uint64) bool {
	i0, i1, i2 := d.indices(h)
	if d.get(i0) && d.get(i1) && d.get(i2) {
		return true
	}
	d.set(i0)
	d.set(i1)
	d.set(i2)
	return false
}

// wordBit maps a flat bit index to (wordIndex, bitMask) within d.bits.
func (d *doorkeeper) wordBit(i uint32) (uint32, uint64) {
	w := i >> 6                // i / 64
	b := uint64(1) << (i & 63) // 1 << (i % 64)
	return w, b
}

func (d *doorkeeper) get(i uint32) bool {
	w, b := d.wordBit(i)
	return d.bits[w]&b != 0
}

func (d *doorkeeper) set(i uint32) {
	w, b := d.wordBit(i)
	d.bits[w] |= b
}

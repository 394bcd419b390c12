package bloom

// nextPow2 rounds x up to a power of two; tables are indexed with a mask.
func nextPow2(x int) int {
	if x <= 1 {
		return 1
	}
	x--
	for shift := 1; shift < 64; shift <<= 1 {
		x |= x >> shift
	}
	return x + 1
}

// mix64 is the SplitMix64 finalizer. Sketch rows and doorkeeper probes
// derive their indexes from it, each with its own seed.
func mix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

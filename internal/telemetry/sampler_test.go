package telemetry

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestDeltaSnapshot subtracts monotonic counters.
func TestDeltaSnapshot(t *testing.T) {
	prev := snapshot{hits: 10, misses: 5, evictions: 1, agings: 2, lifetimeSwept: 3}
	cur := snapshot{hits: 15, misses: 5, evictions: 4, agings: 3, lifetimeSwept: 3}

	d := deltaSnapshot(prev, cur)
	require.Equal(t, uint64(5), d.hits)
	require.Equal(t, uint64(0), d.misses)
	require.Equal(t, uint64(3), d.evictions)
	require.Equal(t, uint64(1), d.agings)
	require.Equal(t, uint64(0), d.lifetimeSwept)
	require.Equal(t, 1.0, d.ratio())
}

// TestDeltaSnapshot_Reset treats a decreased counter as a fresh start.
func TestDeltaSnapshot_Reset(t *testing.T) {
	d := deltaSnapshot(snapshot{hits: 100}, snapshot{hits: 7})
	require.Equal(t, uint64(7), d.hits)
}

// TestSnapshot_Ratio has no division by zero.
func TestSnapshot_Ratio(t *testing.T) {
	require.Equal(t, 0.0, snapshot{}.ratio())
	require.Equal(t, 0.25, snapshot{hits: 1, misses: 3}.ratio())
}

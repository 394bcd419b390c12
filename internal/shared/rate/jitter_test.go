package rate

import (
	"context"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// TestJitter_Chan_ReceivesSignals verifies that Chan() receives rate-limited signals.
func TestJitter_Chan_ReceivesSignals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jitter := NewJitter(ctx, 10)
	require.Equal(t, 10, jitter.Limit())

	select {
	case <-jitter.Chan():
	case <-time.After(time.Second):
		t.Fatal("jitter should emit signals")
	}
}

// TestJitter_StopsOnContextCancel verifies that the channel is closed once ctx is done.
func TestJitter_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	jitter := NewJitter(ctx, 100)
	cancel()

	require.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-jitter.Chan():
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond, "channel should be closed after context cancel")

	_, ok := <-jitter.Chan()
	require.False(t, ok)
}

// TestNewJitter_NonPositiveLimit falls back to one tick per second.
func TestNewJitter_NonPositiveLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jitter := NewJitter(ctx, 0)
	require.Equal(t, 1, jitter.Limit())
	require.Equal(t, 1, cap(jitter.ch))
}

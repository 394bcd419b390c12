// Package cachedtime provides a coarse clock: time is sampled by a ticker
// and served from an atomic, so hot paths avoid calling time.Now.
package cachedtime

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultResolution is how often the cached value is refreshed.
const DefaultResolution = 10 * time.Millisecond

// Clock serves the last sampled time until its context is done,
// after which it falls back to time.Now.
type Clock struct {
	nowUnix atomic.Int64
	closed  atomic.Bool
}

// New starts a clock refreshed every resolution. It stops with ctx.
func New(ctx context.Context, resolution time.Duration) *Clock {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	c := &Clock{}
	c.nowUnix.Store(time.Now().UnixNano())

	ticker := time.NewTicker(resolution)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case tt := <-ticker.C:
				c.nowUnix.Store(tt.UnixNano())
			case <-ctx.Done():
				c.closed.Store(true)
				return
			}
		}
	}()
	return c
}

func (c *Clock) Now() time.Time {
	return time.Unix(0, c.UnixNano())
}

func (c *Clock) UnixNano() int64 {
	if c.closed.Load() {
		return time.Now().UnixNano()
	}
	return c.nowUnix.Load()
}

// Package rate turns a go.uber.org/ratelimit limiter into a channel of ticks
// that workers can select on together with their context.
package rate

import (
	"context"
	"go.uber.org/ratelimit"
)

// Jitter emits at most perSecond ticks per second. A small buffer absorbs
// consumer stalls so the long-run rate is preserved.
type Jitter struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
}

// NewJitter starts the tick provider; the channel is closed once ctx is done.
// A non-positive perSecond is treated as one tick per second.
func NewJitter(ctx context.Context, perSecond int) *Jitter {
	if perSecond <= 0 {
		perSecond = 1
	}
	burst := max(perSecond/10, 1)
	jitter := &Jitter{
		limit: perSecond,
		ch:    make(chan struct{}, burst),
		l:     ratelimit.New(perSecond, ratelimit.WithoutSlack),
	}
	go jitter.provider(ctx)
	return jitter
}

func (l *Jitter) provider(ctx context.Context) {
	defer close(l.ch)
	for {
		l.l.Take()
		select {
		case <-ctx.Done():
			return
		case l.ch <- struct{}{}:
		}
	}
}

func (l *Jitter) Chan() <-chan struct{} {
	return l.ch
}

func (l *Jitter) Limit() int {
	return l.limit
}

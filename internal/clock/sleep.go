// Package clock provides context-aware waiting on top of lnd's clock.Clock.
package clock

import (
	"context"
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

// Sleeper blocks for a duration or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// NewSleeper returns a Sleeper measuring time on clk.
func NewSleeper(clk clock.Clock) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		if d <= 0 {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.TickAfter(d):
			return nil
		}
	}
}

// SleepWithContext waits on the wall clock.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return NewSleeper(clock.NewDefaultClock())(ctx, d)
}

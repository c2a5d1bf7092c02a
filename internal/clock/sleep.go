// Package clock provides injectable time sources and context-aware sleeping.
package clock

import (
	"context"
	"time"
)

// SleepFunc waits for a duration unless the context ends first.
type SleepFunc func(context.Context, time.Duration) error

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock in UTC.
type System struct{}

// Now returns the current UTC time truncated to seconds, the resolution block timestamps carry.
func (System) Now() time.Time { return time.Now().UTC().Truncate(time.Second) }

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package services

import (
	"context"
	"math/rand/v2"
	"time"
)

// Latency simulates a network round trip before each store call.
// The zero value does not wait.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// DefaultLatency matches the delay range the mini-app was tuned against
var DefaultLatency = Latency{Min: 120 * time.Millisecond, Max: 320 * time.Millisecond}

// Pick returns a delay in [Min, Max]
func (l Latency) Pick() time.Duration {
	if l.Max <= l.Min {
		return max(l.Min, 0)
	}
	return l.Min + rand.N(l.Max-l.Min+1)
}

// Wait sleeps for a picked delay or until ctx is done
func (l Latency) Wait(ctx context.Context) error {
	d := l.Pick()
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

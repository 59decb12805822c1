package remote

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ErrUnavailable marks a simulated transient failure of the backing API.
// Retrying the operation takes a fresh draw.
var ErrUnavailable = errors.New("remote unavailable")

// Remote models the latency and reliability of a call to the backing API.
// Production uses Simulated; tests swap in Stub for deterministic outcomes.
type Remote interface {
	Call(ctx context.Context, latency time.Duration, failureRate float64) error
}

// Simulated waits out the given latency and then fails with probability
// failureRate. Every call takes an independent random draw.
type Simulated struct{}

func (Simulated) Call(ctx context.Context, latency time.Duration, failureRate float64) error {
	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if failureRate > 0 && rand.Float64() < failureRate {
		return ErrUnavailable
	}
	return nil
}

package schedule

import "time"

// CancelFunc retracts a pending task. Calling it after the task fired, or
// more than once, is a no-op.
type CancelFunc func()

// Scheduler defers a function call by a fixed duration. Deferred state
// changes (panel clears, feedback expiry) go through this port so tests can
// fire them on demand.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// Timers is the production Scheduler backed by runtime timers.
type Timers struct{}

func (Timers) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

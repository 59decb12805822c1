package remote

import (
	"context"
	"sync"
	"time"
)

// Stub is a zero-latency Remote with scripted outcomes for tests.
type Stub struct {
	mu    sync.Mutex
	queue []error
	err   error
	calls int
}

// NewStub returns a Stub whose calls all succeed until told otherwise.
func NewStub() *Stub {
	return &Stub{}
}

// Fail makes every subsequent call return err until changed. Pass nil to
// restore success.
func (s *Stub) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// FailOnce queues err for the next call only; queued outcomes run before the
// standing one.
func (s *Stub) FailOnce(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, err)
}

// Calls reports how many calls the stub has seen.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Stub) Call(ctx context.Context, latency time.Duration, failureRate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if len(s.queue) > 0 {
		err := s.queue[0]
		s.queue = s.queue[1:]
		return err
	}
	return s.err
}

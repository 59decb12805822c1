package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler for tests: tasks only fire when Fire is called, in
// the order they were scheduled. Canceled tasks are skipped.
type Manual struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	fn       func()
	canceled bool
}

// NewManual creates a Manual scheduler with no pending tasks.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &manualTask{fn: fn}
	m.tasks = append(m.tasks, task)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		task.canceled = true
	}
}

// Fire runs every task scheduled so far that was not canceled. Tasks
// scheduled by the fired functions wait for the next Fire.
func (m *Manual) Fire() {
	m.mu.Lock()
	pending := m.tasks
	m.tasks = nil
	m.mu.Unlock()

	for _, task := range pending {
		m.mu.Lock()
		canceled := task.canceled
		m.mu.Unlock()
		if !canceled {
			task.fn()
		}
	}
}

// Pending reports how many tasks are scheduled and not yet fired.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

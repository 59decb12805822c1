package console

import (
	"sync"
	"time"

	"github.com/ganot/seller-console/internal/domain/lead"
	"github.com/ganot/seller-console/internal/schedule"
)

// closeDelay keeps the previous selection around after a close so consumers
// can render an exit transition against it.
const closeDelay = 300 * time.Millisecond

// panel tracks which lead is open for editing and whether the detail panel
// shows. Closing hides the panel immediately but clears the selection on a
// cancelable timer; reselecting first wins.
type panel struct {
	sched schedule.Scheduler

	// onClear runs after a deferred clear actually empties the selection.
	onClear func()

	mu          sync.Mutex
	selected    *lead.Lead
	open        bool
	cancelClear schedule.CancelFunc
}

func newPanel(sched schedule.Scheduler) *panel {
	return &panel{sched: sched}
}

// Select makes l the current selection and opens the panel, retracting any
// pending clear from an earlier close.
func (p *panel) Select(l lead.Lead) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancelClear != nil {
		p.cancelClear()
		p.cancelClear = nil
	}
	sel := l
	p.selected = &sel
	p.open = true
}

// Close hides the panel now and schedules the selection clear.
func (p *panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = false
	if p.cancelClear != nil {
		p.cancelClear()
	}
	p.cancelClear = p.sched.After(closeDelay, func() {
		p.mu.Lock()
		if p.open {
			// Reselected while the clear was pending.
			p.mu.Unlock()
			return
		}
		p.selected = nil
		p.cancelClear = nil
		onClear := p.onClear
		p.mu.Unlock()

		if onClear != nil {
			onClear()
		}
	})
}

// Selected returns a copy of the current selection, or nil.
func (p *panel) Selected() *lead.Lead {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selected == nil {
		return nil
	}
	sel := *p.selected
	return &sel
}

// Open reports whether the panel is showing.
func (p *panel) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// setSelected swaps the selected-lead view in place without touching panel
// visibility. Used by the optimistic save path.
func (p *panel) setSelected(l *lead.Lead) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l == nil {
		p.selected = nil
		return
	}
	sel := *l
	p.selected = &sel
}

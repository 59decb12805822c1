package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ganot/seller-console/internal/domain/lead"
	"github.com/ganot/seller-console/internal/domain/opportunity"
	"github.com/ganot/seller-console/internal/schedule"
	"github.com/ganot/seller-console/internal/store"
)

// FiltersKey is the KV entry holding the persisted list preferences.
const FiltersKey = "seller-console-filters"

// feedbackTTL is how long a conversion outcome message stays up.
const feedbackTTL = 5 * time.Second

// Console wires the repositories, selection state and edit session together
// and owns the workflows that span them: the optimistic save path and the
// lead-to-opportunity conversion.
type Console struct {
	leads  *lead.Service
	opps   *opportunity.Service
	kv     store.KV
	sched  schedule.Scheduler
	logger *slog.Logger

	panel *panel
	edit  *EditSession

	mu             sync.Mutex
	filters        lead.Filters
	loading        bool
	saveSeq        uint64
	feedback       string
	cancelFeedback schedule.CancelFunc
}

// New builds a console around the given collaborators and restores persisted
// filter preferences, falling back to defaults when nothing is stored.
func New(ctx context.Context, leads *lead.Service, opps *opportunity.Service, kv store.KV, sched schedule.Scheduler, logger *slog.Logger) (*Console, error) {
	c := &Console{
		leads:   leads,
		opps:    opps,
		kv:      kv,
		sched:   sched,
		logger:  logger,
		filters: lead.DefaultFilters(),
	}
	c.panel = newPanel(sched)
	c.edit = &EditSession{console: c}
	c.edit.reset(nil)
	c.panel.onClear = func() { c.edit.reset(nil) }

	var stored lead.Filters
	found, err := store.Load(ctx, kv, FiltersKey, &stored)
	if err != nil {
		return nil, err
	}
	if found {
		c.filters = stored.Normalize()
	}
	return c, nil
}

// LoadLeads populates the lead set from the static source. Callable again to
// retry after a failure or to replace state wholesale.
func (c *Console) LoadLeads(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	err := c.leads.Load(ctx)

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
	return err
}

// Loading reports whether a load is in flight.
func (c *Console) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LoadError returns the error from the most recent failed load, if any.
func (c *Console) LoadError() error {
	return c.leads.LoadErr()
}

// Filters returns the current list preferences.
func (c *Console) Filters() lead.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// FilteredLeads returns the current list view.
func (c *Console) FilteredLeads() []lead.Lead {
	return c.leads.Filtered(c.Filters())
}

// UpdateFilters merges the set fields of patch into the current filters and
// persists the result.
func (c *Console) UpdateFilters(ctx context.Context, patch lead.FilterPatch) error {
	c.mu.Lock()
	c.filters = patch.Apply(c.filters)
	filters := c.filters
	c.mu.Unlock()

	return store.Save(ctx, c.kv, FiltersKey, filters)
}

// SelectLead opens the detail panel on l and starts a fresh edit session.
func (c *Console) SelectLead(l lead.Lead) {
	c.panel.Select(l)
	c.edit.reset(&l)
}

// Selected returns a copy of the currently selected lead, or nil.
func (c *Console) Selected() *lead.Lead {
	return c.panel.Selected()
}

// PanelOpen reports whether the detail panel is showing.
func (c *Console) PanelOpen() bool {
	return c.panel.Open()
}

// ClosePanel hides the panel now and clears the selection after the exit
// transition window.
func (c *Console) ClosePanel() {
	c.panel.Close()
}

// Edit returns the edit session bound to the current selection.
func (c *Console) Edit() *EditSession {
	return c.edit
}

// RemoveLead drops a lead from the repository. Unknown ids are a no-op.
func (c *Console) RemoveLead(id string) {
	c.leads.Remove(id)
}

// Opportunities returns every created opportunity, most recent first.
func (c *Console) Opportunities() []opportunity.Opportunity {
	return c.opps.All()
}

// Feedback returns the transient conversion outcome message, or "".
func (c *Console) Feedback() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback
}

// SaveLead pushes updates through the lead repository while immediately
// reflecting the merged values on the selected-lead view. On failure the
// view rolls back to the pre-save snapshot and the error propagates to the
// caller. Overlapping saves are serialized latest-wins: a superseded save
// settles without touching the view, so a slow early save cannot clobber a
// newer optimistic edit.
func (c *Console) SaveLead(ctx context.Context, id string, updates lead.Updates) (lead.Lead, error) {
	c.mu.Lock()
	c.saveSeq++
	seq := c.saveSeq
	snapshot := c.panel.Selected()
	if snapshot != nil && snapshot.ID == id {
		optimistic := updates.Apply(*snapshot)
		c.panel.setSelected(&optimistic)
	}
	c.mu.Unlock()

	updated, err := c.leads.Update(ctx, id, updates)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.saveSeq || errors.Is(err, lead.ErrSuperseded) {
		// A newer save owns the view now; hand back only this call's
		// own outcome.
		return updated, err
	}
	if err != nil {
		if sel := c.panel.Selected(); sel != nil && sel.ID == id {
			c.panel.setSelected(snapshot)
		}
		return lead.Lead{}, err
	}
	if sel := c.panel.Selected(); sel != nil && sel.ID == id {
		c.panel.setSelected(&updated)
	}
	return updated, nil
}

// ConvertLead runs the conversion workflow: create the opportunity, retire
// the lead on success, surface the outcome as transient feedback, and close
// the detail panel either way. On failure the lead stays untouched.
func (c *Console) ConvertLead(ctx context.Context, l lead.Lead, amount *float64) (opportunity.Opportunity, error) {
	opp, err := c.opps.Create(ctx, l.Name, l.Company, l.ID, amount)
	if err != nil {
		c.setFeedback("Failed to create opportunity. Please try again.")
		c.ClosePanel()
		return opportunity.Opportunity{}, err
	}

	c.leads.Remove(l.ID)
	c.setFeedback(fmt.Sprintf("Successfully converted %s to an opportunity!", l.Name))
	c.ClosePanel()

	if c.logger != nil {
		c.logger.Info("lead converted", "lead_id", l.ID, "opportunity_id", opp.ID)
	}
	return opp, nil
}

// setFeedback replaces the transient message and restarts its expiry timer.
func (c *Console) setFeedback(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelFeedback != nil {
		c.cancelFeedback()
	}
	c.feedback = msg
	c.cancelFeedback = c.sched.After(feedbackTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.feedback = ""
		c.cancelFeedback = nil
	})
}

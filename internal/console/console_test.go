package console_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/seller-console/internal/console"
	"github.com/ganot/seller-console/internal/consoletest"
	"github.com/ganot/seller-console/internal/domain/lead"
	"github.com/ganot/seller-console/internal/remote"
	"github.com/ganot/seller-console/internal/schedule"
	"github.com/ganot/seller-console/internal/store"
)

func TestConsole_FiltersDefaultWhenNothingStored(t *testing.T) {
	fx := consoletest.New(t, consoletest.SampleLeads())
	require.Equal(t, lead.DefaultFilters(), fx.Console.Filters())
}

func TestConsole_FiltersRestoredFromStore(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	stored := lead.Filters{Search: "acme", Status: "new", SortBy: lead.SortByName, SortOrder: lead.SortAsc}
	require.NoError(t, store.Save(ctx, kv, console.FiltersKey, stored))

	leadSvc := lead.NewService(consoletest.StaticSource(nil), remote.NewStub(), nil)
	c, err := console.New(ctx, leadSvc, nil, kv, schedule.NewManual(), nil)
	require.NoError(t, err)
	require.Equal(t, stored, c.Filters())
}

func TestConsole_UpdateFiltersPersists(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())

	search := "zed"
	require.NoError(t, fx.Console.UpdateFilters(ctx, lead.FilterPatch{Search: &search}))
	require.Equal(t, "zed", fx.Console.Filters().Search)

	var stored lead.Filters
	found, err := store.Load(ctx, fx.KV, console.FiltersKey, &stored)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, fx.Console.Filters(), stored)
}

func TestConsole_FilteredLeads(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())

	search := "acme"
	require.NoError(t, fx.Console.UpdateFilters(ctx, lead.FilterPatch{Search: &search}))
	result := fx.Console.FilteredLeads()
	require.Len(t, result, 1)
	require.Equal(t, "lead_1", result[0].ID)
}

func TestConsole_SelectOpensPanel(t *testing.T) {
	fx := consoletest.New(t, consoletest.SampleLeads())
	l := fx.Console.FilteredLeads()[0]

	fx.Console.SelectLead(l)
	require.True(t, fx.Console.PanelOpen())
	sel := fx.Console.Selected()
	require.NotNil(t, sel)
	require.Equal(t, l.ID, sel.ID)
}

func TestConsole_ClosePanelDefersSelectionClear(t *testing.T) {
	fx := consoletest.New(t, consoletest.SampleLeads())
	l := fx.Console.FilteredLeads()[0]
	fx.Console.SelectLead(l)

	fx.Console.ClosePanel()
	require.False(t, fx.Console.PanelOpen())
	// The previous lead is still visible during the exit window.
	require.NotNil(t, fx.Console.Selected())

	fx.Sched.Fire()
	require.Nil(t, fx.Console.Selected())
	require.False(t, fx.Console.Edit().Active())
}

func TestConsole_ReselectCancelsPendingClear(t *testing.T) {
	fx := consoletest.New(t, consoletest.SampleLeads())
	leads := fx.Console.FilteredLeads()
	fx.Console.SelectLead(leads[0])
	fx.Console.ClosePanel()

	fx.Console.SelectLead(leads[1])
	fx.Sched.Fire()

	// The stale clear must not wipe the new selection.
	sel := fx.Console.Selected()
	require.NotNil(t, sel)
	require.Equal(t, leads[1].ID, sel.ID)
	require.True(t, fx.Console.PanelOpen())
}

func TestConsole_SaveLeadOptimisticThenAuthoritative(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())
	l, ok := fx.Leads.Get("lead_1")
	require.True(t, ok)
	fx.Console.SelectLead(l)

	name := "Acme Incorporated"
	updated, err := fx.Console.SaveLead(ctx, l.ID, lead.Updates{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Acme Incorporated", updated.Name)

	sel := fx.Console.Selected()
	require.NotNil(t, sel)
	require.Equal(t, updated, *sel)

	stored, ok := fx.Leads.Get(l.ID)
	require.True(t, ok)
	require.Equal(t, updated, stored)
}

func TestConsole_SaveLeadRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())
	l, ok := fx.Leads.Get("lead_1")
	require.True(t, ok)
	fx.Console.SelectLead(l)

	fx.LeadRemote.FailOnce(remote.ErrUnavailable)
	name := "Doomed Edit"
	_, err := fx.Console.SaveLead(ctx, l.ID, lead.Updates{Name: &name})
	require.ErrorIs(t, err, remote.ErrUnavailable)

	// The selected-lead view equals the pre-save snapshot exactly.
	sel := fx.Console.Selected()
	require.NotNil(t, sel)
	require.Equal(t, l, *sel)

	stored, ok := fx.Leads.Get(l.ID)
	require.True(t, ok)
	require.Equal(t, l, stored)
}

// gatedRemote blocks one numbered call until released; every other call
// passes straight through. Lets a test hold one save in flight while a
// newer one settles.
type gatedRemote struct {
	mu       sync.Mutex
	gateCall int
	started  chan struct{}
	release  chan struct{}
	calls    int
}

func newGatedRemote(gateCall int) *gatedRemote {
	return &gatedRemote{
		gateCall: gateCall,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (g *gatedRemote) Call(ctx context.Context, latency time.Duration, failureRate float64) error {
	g.mu.Lock()
	g.calls++
	gated := g.calls == g.gateCall
	g.mu.Unlock()

	if gated {
		close(g.started)
		<-g.release
	}
	return nil
}

func TestConsole_StaleSaveDoesNotClobberNewerOptimisticState(t *testing.T) {
	ctx := context.Background()
	// Call 1 is the initial load; call 2 is the save held in flight.
	rmt := newGatedRemote(2)
	leadSvc := lead.NewService(consoletest.StaticSource(consoletest.SampleLeads()), rmt, nil)
	c, err := console.New(ctx, leadSvc, nil, store.NewMemory(), schedule.NewManual(), nil)
	require.NoError(t, err)
	require.NoError(t, c.LoadLeads(ctx))

	l, ok := leadSvc.Get("lead_1")
	require.True(t, ok)
	c.SelectLead(l)

	// The first save sticks in the simulated remote...
	firstName := "First Edit"
	firstDone := make(chan error, 1)
	go func() {
		_, err := c.SaveLead(ctx, l.ID, lead.Updates{Name: &firstName})
		firstDone <- err
	}()
	<-rmt.started

	// ...while a second save settles.
	secondName := "Second Edit"
	updated, err := c.SaveLead(ctx, l.ID, lead.Updates{Name: &secondName})
	require.NoError(t, err)
	require.Equal(t, "Second Edit", updated.Name)

	// When the stale save finally lands it must commit nowhere.
	close(rmt.release)
	require.ErrorIs(t, <-firstDone, lead.ErrSuperseded)

	sel := c.Selected()
	require.NotNil(t, sel)
	require.Equal(t, "Second Edit", sel.Name)
	stored, ok := leadSvc.Get(l.ID)
	require.True(t, ok)
	require.Equal(t, "Second Edit", stored.Name)
}

func TestConsole_ConvertLeadSuccess(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())
	l, ok := fx.Leads.Get("lead_2")
	require.True(t, ok)
	fx.Console.SelectLead(l)

	amount := 5000.0
	opp, err := fx.Console.ConvertLead(ctx, l, &amount)
	require.NoError(t, err)
	require.Equal(t, l.ID, opp.LeadID)

	// The lead is gone, the opportunity exists.
	_, ok = fx.Leads.Get(l.ID)
	require.False(t, ok)
	opps := fx.Console.Opportunities()
	require.Len(t, opps, 1)
	require.Equal(t, l.ID, opps[0].LeadID)

	require.Equal(t, "Successfully converted Zed to an opportunity!", fx.Console.Feedback())
	require.False(t, fx.Console.PanelOpen())
}

func TestConsole_ConvertLeadFailurePreservesLead(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())
	l, ok := fx.Leads.Get("lead_2")
	require.True(t, ok)
	fx.Console.SelectLead(l)

	fx.OppRemote.FailOnce(remote.ErrUnavailable)
	_, err := fx.Console.ConvertLead(ctx, l, nil)
	require.ErrorIs(t, err, remote.ErrUnavailable)

	stored, ok := fx.Leads.Get(l.ID)
	require.True(t, ok)
	require.Equal(t, l, stored)
	require.Empty(t, fx.Console.Opportunities())

	require.Equal(t, "Failed to create opportunity. Please try again.", fx.Console.Feedback())
	require.False(t, fx.Console.PanelOpen())
}

func TestConsole_FeedbackAutoClears(t *testing.T) {
	ctx := context.Background()
	fx := consoletest.New(t, consoletest.SampleLeads())
	l, ok := fx.Leads.Get("lead_2")
	require.True(t, ok)

	_, err := fx.Console.ConvertLead(ctx, l, nil)
	require.NoError(t, err)
	require.NotEmpty(t, fx.Console.Feedback())

	fx.Sched.Fire()
	require.Empty(t, fx.Console.Feedback())
}

func TestConsole_RemoveLeadIdempotent(t *testing.T) {
	fx := consoletest.New(t, consoletest.SampleLeads())
	before := len(fx.Leads.All())

	fx.Console.RemoveLead("lead_3")
	require.Len(t, fx.Leads.All(), before-1)
	fx.Console.RemoveLead("lead_3")
	require.Len(t, fx.Leads.All(), before-1)
}

func TestConsole_LoadErrorRetry(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	rmt := remote.NewStub()
	leadSvc := lead.NewService(consoletest.StaticSource(consoletest.SampleLeads()), rmt, nil)
	c, err := console.New(ctx, leadSvc, nil, kv, schedule.NewManual(), nil)
	require.NoError(t, err)

	rmt.FailOnce(remote.ErrUnavailable)
	require.Error(t, c.LoadLeads(ctx))
	require.Error(t, c.LoadError())

	require.NoError(t, c.LoadLeads(ctx))
	require.NoError(t, c.LoadError())
	require.Len(t, c.FilteredLeads(), len(consoletest.SampleLeads()))
}

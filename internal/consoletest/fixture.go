package consoletest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/seller-console/internal/console"
	"github.com/ganot/seller-console/internal/domain/lead"
	"github.com/ganot/seller-console/internal/domain/opportunity"
	"github.com/ganot/seller-console/internal/remote"
	"github.com/ganot/seller-console/internal/schedule"
	"github.com/ganot/seller-console/internal/store"
)

// Fixture is a fully wired in-memory console with deterministic ports: a
// zero-latency stub per repository and a manually fired scheduler.
type Fixture struct {
	Console    *console.Console
	Leads      *lead.Service
	Opps       *opportunity.Service
	KV         *store.Memory
	LeadRemote *remote.Stub
	OppRemote  *remote.Stub
	Sched      *schedule.Manual
}

// New wires a console over seedLeads and loads it.
func New(t *testing.T, seedLeads []lead.Lead) *Fixture {
	t.Helper()
	ctx := context.Background()

	kv := store.NewMemory()
	leadRemote := remote.NewStub()
	oppRemote := remote.NewStub()
	sched := schedule.NewManual()

	leadSvc := lead.NewService(StaticSource(seedLeads), leadRemote, nil)
	oppSvc := opportunity.NewService(kv, oppRemote, nil)
	require.NoError(t, oppSvc.Load(ctx))

	c, err := console.New(ctx, leadSvc, oppSvc, kv, sched, nil)
	require.NoError(t, err)
	require.NoError(t, c.LoadLeads(ctx))

	return &Fixture{
		Console:    c,
		Leads:      leadSvc,
		Opps:       oppSvc,
		KV:         kv,
		LeadRemote: leadRemote,
		OppRemote:  oppRemote,
		Sched:      sched,
	}
}

// StaticSource serves a fixed lead slice.
type StaticSource []lead.Lead

func (s StaticSource) FetchLeads(ctx context.Context) ([]lead.Lead, error) {
	return append([]lead.Lead(nil), s...), nil
}

// SampleLeads returns a small dataset covering every status.
func SampleLeads() []lead.Lead {
	return []lead.Lead{
		{ID: "lead_1", Name: "Acme Inc", Company: "Acme", Email: "sales@acme.com", Source: "web", Score: 10, Status: lead.StatusNew},
		{ID: "lead_2", Name: "Zed", Company: "Zed Co", Email: "zed@zedco.com", Source: "referral", Score: 90, Status: lead.StatusQualified},
		{ID: "lead_3", Name: "Mira Voss", Company: "Vossware", Email: "mira@vossware.com", Source: "outbound", Score: 50, Status: lead.StatusContacted},
		{ID: "lead_4", Name: "Old Pipe", Company: "Pipeline Ltd", Email: "contact@pipeline.com", Source: "web", Score: 25, Status: lead.StatusDisqualified},
	}
}

package opportunity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/seller-console/internal/domain/opportunity"
	"github.com/ganot/seller-console/internal/remote"
	"github.com/ganot/seller-console/internal/store"
)

func TestOpportunityService_Create(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := opportunity.NewService(kv, remote.NewStub(), nil)
	require.NoError(t, svc.Load(ctx))

	amount := 1200.50
	opp, err := svc.Create(ctx, "Sarah Chen", "Brightline Analytics", "lead_001", &amount)
	require.NoError(t, err)
	require.NotEmpty(t, opp.ID)
	require.Equal(t, "Sarah Chen - Brightline Analytics Opportunity", opp.Name)
	require.Equal(t, opportunity.StageQualification, opp.Stage)
	require.Equal(t, "Brightline Analytics", opp.AccountName)
	require.Equal(t, "lead_001", opp.LeadID)
	require.NotNil(t, opp.Amount)
	require.Equal(t, 1200.50, *opp.Amount)
	require.False(t, opp.CreatedAt.IsZero())
}

func TestOpportunityService_CreateWithoutAmount(t *testing.T) {
	ctx := context.Background()
	svc := opportunity.NewService(store.NewMemory(), remote.NewStub(), nil)
	require.NoError(t, svc.Load(ctx))

	opp, err := svc.Create(ctx, "Tom Oliveira", "Harbor & Finch", "lead_004", nil)
	require.NoError(t, err)
	require.Nil(t, opp.Amount)
}

func TestOpportunityService_CreatePrependsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc := opportunity.NewService(store.NewMemory(), remote.NewStub(), nil)
	require.NoError(t, svc.Load(ctx))

	first, err := svc.Create(ctx, "A", "Alpha", "lead_a", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "B", "Beta", "lead_b", nil)
	require.NoError(t, err)

	all := svc.All()
	require.Len(t, all, 2)
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, first.ID, all[1].ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestOpportunityService_CreateFailureLeavesListIntact(t *testing.T) {
	ctx := context.Background()
	rmt := remote.NewStub()
	svc := opportunity.NewService(store.NewMemory(), rmt, nil)
	require.NoError(t, svc.Load(ctx))

	rmt.FailOnce(remote.ErrUnavailable)
	_, err := svc.Create(ctx, "A", "Alpha", "lead_a", nil)
	require.ErrorIs(t, err, remote.ErrUnavailable)
	require.Empty(t, svc.All())
}

func TestOpportunityService_PersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	svc := opportunity.NewService(kv, remote.NewStub(), nil)
	require.NoError(t, svc.Load(ctx))
	created, err := svc.Create(ctx, "Sarah Chen", "Brightline Analytics", "lead_001", nil)
	require.NoError(t, err)

	// A fresh service over the same store sees the persisted list.
	reborn := opportunity.NewService(kv, remote.NewStub(), nil)
	require.NoError(t, reborn.Load(ctx))
	all := reborn.All()
	require.Len(t, all, 1)
	require.Equal(t, created.ID, all[0].ID)
	require.Equal(t, created.LeadID, all[0].LeadID)
}

func TestOpportunityService_LoadWithNothingStored(t *testing.T) {
	ctx := context.Background()
	svc := opportunity.NewService(store.NewMemory(), remote.NewStub(), nil)
	require.NoError(t, svc.Load(ctx))
	require.Empty(t, svc.All())
}

package lead_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/seller-console/internal/domain/lead"
)

func sampleLeads() []lead.Lead {
	return []lead.Lead{
		{ID: "1", Name: "Acme Inc", Company: "Acme", Status: lead.StatusNew, Score: 10},
		{ID: "2", Name: "Zed", Company: "Zed Co", Status: lead.StatusQualified, Score: 90},
		{ID: "3", Name: "Mira Voss", Company: "Vossware", Status: lead.StatusContacted, Score: 50},
	}
}

func TestFilterAndSort_SearchMatchesNameOrCompany(t *testing.T) {
	filters := lead.Filters{Search: "acme", Status: "all", SortBy: lead.SortByScore, SortOrder: lead.SortDesc}
	result := lead.FilterAndSort(sampleLeads(), filters)
	require.Len(t, result, 1)
	require.Equal(t, "Acme Inc", result[0].Name)

	filters.Search = "WARE"
	result = lead.FilterAndSort(sampleLeads(), filters)
	require.Len(t, result, 1)
	require.Equal(t, "Vossware", result[0].Company)
}

func TestFilterAndSort_StatusFilter(t *testing.T) {
	filters := lead.DefaultFilters()
	filters.Status = string(lead.StatusQualified)
	result := lead.FilterAndSort(sampleLeads(), filters)
	require.Len(t, result, 1)
	require.Equal(t, "Zed", result[0].Name)

	filters.Status = lead.StatusFilterAll
	result = lead.FilterAndSort(sampleLeads(), filters)
	require.Len(t, result, 3)
}

func TestFilterAndSort_ScoreOrder(t *testing.T) {
	filters := lead.Filters{Status: "all", SortBy: lead.SortByScore, SortOrder: lead.SortDesc}
	result := lead.FilterAndSort(sampleLeads(), filters)
	require.Equal(t, []int{90, 50, 10}, scores(result))

	filters.SortOrder = lead.SortAsc
	result = lead.FilterAndSort(sampleLeads(), filters)
	require.Equal(t, []int{10, 50, 90}, scores(result))
}

func TestFilterAndSort_StringFieldsCaseInsensitive(t *testing.T) {
	leads := []lead.Lead{
		{ID: "1", Name: "beta", Company: "x"},
		{ID: "2", Name: "Alpha", Company: "y"},
		{ID: "3", Name: "GAMMA", Company: "z"},
	}
	filters := lead.Filters{Status: "all", SortBy: lead.SortByName, SortOrder: lead.SortAsc}
	result := lead.FilterAndSort(leads, filters)
	require.Equal(t, []string{"Alpha", "beta", "GAMMA"}, names(result))

	filters.SortOrder = lead.SortDesc
	result = lead.FilterAndSort(leads, filters)
	require.Equal(t, []string{"GAMMA", "beta", "Alpha"}, names(result))
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	leads := sampleLeads()
	lead.FilterAndSort(leads, lead.Filters{Status: "all", SortBy: lead.SortByScore, SortOrder: lead.SortAsc})
	require.Equal(t, sampleLeads(), leads)
}

func TestFilters_NormalizeBackfillsDefaults(t *testing.T) {
	f := lead.Filters{Search: "keep"}.Normalize()
	require.Equal(t, "keep", f.Search)
	require.Equal(t, lead.StatusFilterAll, f.Status)
	require.Equal(t, lead.SortByScore, f.SortBy)
	require.Equal(t, lead.SortDesc, f.SortOrder)
}

func TestFilterPatch_AppliesOnlySetFields(t *testing.T) {
	search := "acme"
	order := lead.SortAsc
	f := lead.DefaultFilters()
	patched := lead.FilterPatch{Search: &search, SortOrder: &order}.Apply(f)
	require.Equal(t, "acme", patched.Search)
	require.Equal(t, lead.SortAsc, patched.SortOrder)
	require.Equal(t, f.Status, patched.Status)
	require.Equal(t, f.SortBy, patched.SortBy)
}

func scores(leads []lead.Lead) []int {
	out := make([]int, len(leads))
	for i, l := range leads {
		out[i] = l.Score
	}
	return out
}

func names(leads []lead.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.Name
	}
	return out
}

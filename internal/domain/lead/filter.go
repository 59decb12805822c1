package lead

import (
	"sort"
	"strings"
)

// SortField names a lead attribute the list can be ordered by.
type SortField string

const (
	SortByScore   SortField = "score"
	SortByName    SortField = "name"
	SortByCompany SortField = "company"
)

// SortOrder is the list direction. Descending is the default: larger scores
// and later strings sort first.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// StatusFilterAll matches every lead status.
const StatusFilterAll = "all"

// Filters is the persisted list view preference. It is always fully
// populated; Normalize backfills defaults for anything missing from storage.
type Filters struct {
	Search    string    `json:"search"`
	Status    string    `json:"status"`
	SortBy    SortField `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// DefaultFilters is the out-of-the-box view: everything, best score first.
func DefaultFilters() Filters {
	return Filters{
		Search:    "",
		Status:    StatusFilterAll,
		SortBy:    SortByScore,
		SortOrder: SortDesc,
	}
}

// Normalize fills unset fields with their defaults.
func (f Filters) Normalize() Filters {
	if f.Status == "" {
		f.Status = StatusFilterAll
	}
	if f.SortBy == "" {
		f.SortBy = SortByScore
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	return f
}

// FilterPatch updates only the set fields of a Filters value.
type FilterPatch struct {
	Search    *string
	Status    *string
	SortBy    *SortField
	SortOrder *SortOrder
}

// Apply merges the set fields of p into a copy of f.
func (p FilterPatch) Apply(f Filters) Filters {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	if p.SortOrder != nil {
		f.SortOrder = *p.SortOrder
	}
	return f
}

// FilterAndSort returns the leads matching f in the order f asks for. The
// input slice is never mutated. Equal sort keys keep no particular order.
func FilterAndSort(leads []Lead, f Filters) []Lead {
	f = f.Normalize()

	result := make([]Lead, 0, len(leads))
	search := strings.ToLower(f.Search)
	for _, l := range leads {
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Name), search) &&
			!strings.Contains(strings.ToLower(l.Company), search) {
			continue
		}
		if f.Status != StatusFilterAll && string(l.Status) != f.Status {
			continue
		}
		result = append(result, l)
	}

	sort.Slice(result, func(i, j int) bool {
		c := compareBy(result[i], result[j], f.SortBy)
		if f.SortOrder == SortAsc {
			return c < 0
		}
		return c > 0
	})

	return result
}

// compareBy orders two leads by one field; string fields compare
// case-insensitively, score numerically.
func compareBy(a, b Lead, field SortField) int {
	switch field {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByCompany:
		return strings.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company))
	default:
		return a.Score - b.Score
	}
}

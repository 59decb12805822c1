package lead

// Status is a lead's qualification state.
type Status string

const (
	StatusNew          Status = "new"
	StatusContacted    Status = "contacted"
	StatusQualified    Status = "qualified"
	StatusDisqualified Status = "disqualified"
)

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusQualified, StatusDisqualified}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusDisqualified:
		return true
	}
	return false
}

// Lead is a prospective customer record awaiting qualification. Leads are
// created by the static data source and mutated only through Service.Update;
// a successful conversion removes them.
type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Score   int    `json:"score"`
	Status  Status `json:"status"`
}

// Updates carries a partial edit; nil fields keep their current value.
type Updates struct {
	Name    *string
	Email   *string
	Company *string
	Status  *Status
}

// Apply merges the set fields of u into a copy of l.
func (u Updates) Apply(l Lead) Lead {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Email != nil {
		l.Email = *u.Email
	}
	if u.Company != nil {
		l.Company = *u.Company
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	return l
}

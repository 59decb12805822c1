package opportunity

import "time"

// StageQualification is the stage every new opportunity starts in. No
// further stage transitions are modeled.
const StageQualification = "Qualification"

// Opportunity is a lead converted into a tracked sales deal. Opportunities
// are never mutated or removed; LeadID is a back-reference only, since the
// originating lead is usually gone by the time anyone reads it.
type Opportunity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Stage       string    `json:"stage"`
	Amount      *float64  `json:"amount,omitempty"`
	AccountName string    `json:"accountName"`
	CreatedAt   time.Time `json:"createdAt"`
	LeadID      string    `json:"leadId"`
}

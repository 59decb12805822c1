package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ganot/seller-console/internal/console"
	"github.com/ganot/seller-console/internal/domain/lead"
)

// focusTarget identifies which control receives keystrokes.
type focusTarget int

const (
	focusList focusTarget = iota
	focusSearch
	focusName
	focusEmail
	focusCompany
	focusStatus
	focusAmount
)

// panelFields is the Tab cycle order inside the detail panel.
var panelFields = []focusTarget{focusName, focusEmail, focusCompany, focusStatus, focusAmount}

type appModel struct {
	console *console.Console

	width  int
	height int

	focus focusTarget

	leadsList    list.Model
	searchInput  textinput.Model
	nameInput    textinput.Model
	emailInput   textinput.Model
	companyInput textinput.Model
	amountInput  textinput.Model
}

func newAppModel(c *console.Console) appModel {
	m := appModel{
		console: c,
		focus:   focusList,
	}

	m.leadsList = list.New([]list.Item{}, newLeadDelegate(), 0, 0)
	m.leadsList.SetShowTitle(false)
	m.leadsList.SetShowHelp(false)
	m.leadsList.SetShowStatusBar(false)
	m.leadsList.SetFilteringEnabled(false)

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search by name or company"
	m.searchInput.CharLimit = 80
	m.searchInput.Width = 36
	m.searchInput.SetValue(c.Filters().Search)

	m.nameInput = newFieldInput("Name")
	m.emailInput = newFieldInput("Email")
	m.companyInput = newFieldInput("Company")
	m.amountInput = newFieldInput("Amount (optional)")

	return m
}

func newFieldInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 32
	return in
}

// seedPanelInputs loads the edit session's draft into the panel inputs.
// Called whenever a lead is selected so stale text never bleeds across
// selections.
func (m *appModel) seedPanelInputs() {
	draft := m.console.Edit().Draft()
	m.nameInput.SetValue(draft.Name)
	m.emailInput.SetValue(draft.Email)
	m.companyInput.SetValue(draft.Company)
	m.amountInput.SetValue(m.console.Edit().AmountText())
}

func (m *appModel) setFocus(f focusTarget) {
	m.focus = f
	for _, in := range []*textinput.Model{&m.searchInput, &m.nameInput, &m.emailInput, &m.companyInput, &m.amountInput} {
		in.Blur()
	}
	switch f {
	case focusSearch:
		m.searchInput.Focus()
	case focusName:
		m.nameInput.Focus()
	case focusEmail:
		m.emailInput.Focus()
	case focusCompany:
		m.companyInput.Focus()
	case focusAmount:
		m.amountInput.Focus()
	}
}

func (m appModel) panelFocused() bool {
	for _, f := range panelFields {
		if m.focus == f {
			return true
		}
	}
	return false
}

// refreshLeads rebuilds the list items from the current filtered view.
func (m *appModel) refreshLeads() {
	leads := m.console.FilteredLeads()
	items := make([]list.Item, len(leads))
	for i, l := range leads {
		items[i] = leadItem{lead: l}
	}
	m.leadsList.SetItems(items)
}

// nextStatusFilter cycles all -> new -> contacted -> qualified ->
// disqualified -> all.
func nextStatusFilter(current string) string {
	statuses := lead.Statuses()
	if current == lead.StatusFilterAll {
		return string(statuses[0])
	}
	for i, s := range statuses {
		if string(s) == current {
			if i == len(statuses)-1 {
				return lead.StatusFilterAll
			}
			return string(statuses[i+1])
		}
	}
	return lead.StatusFilterAll
}

// nextSortField cycles score -> name -> company.
func nextSortField(current lead.SortField) lead.SortField {
	switch current {
	case lead.SortByScore:
		return lead.SortByName
	case lead.SortByName:
		return lead.SortByCompany
	default:
		return lead.SortByScore
	}
}

// nextStatus cycles the draft status through every lead status.
func nextStatus(current lead.Status, step int) lead.Status {
	statuses := lead.Statuses()
	for i, s := range statuses {
		if s == current {
			next := (i + step + len(statuses)) % len(statuses)
			return statuses[next]
		}
	}
	return statuses[0]
}

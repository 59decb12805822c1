package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ganot/seller-console/internal/console"
	"github.com/ganot/seller-console/internal/domain/lead"
)

type leadsLoadedMsg struct{ err error }
type saveDoneMsg struct{ err error }
type convertDoneMsg struct{ err error }
type refreshTickMsg time.Time

// refreshInterval drives re-reads of timer-owned state (panel exit clears,
// feedback expiry) so the view stays current without key presses.
const refreshInterval = 100 * time.Millisecond

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadLeadsCmd(), refreshTick())
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshTickMsg(t) })
}

func (m appModel) loadLeadsCmd() tea.Cmd {
	c := m.console
	return func() tea.Msg {
		return leadsLoadedMsg{err: c.LoadLeads(context.Background())}
	}
}

func (m appModel) saveCmd() tea.Cmd {
	edit := m.console.Edit()
	return func() tea.Msg {
		return saveDoneMsg{err: edit.Save(context.Background())}
	}
}

func (m appModel) convertCmd() tea.Cmd {
	edit := m.console.Edit()
	return func() tea.Msg {
		return convertDoneMsg{err: edit.Convert(context.Background())}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case leadsLoadedMsg:
		m.refreshLeads()
		return m, nil

	case saveDoneMsg, convertDoneMsg:
		m.refreshLeads()
		if !m.console.PanelOpen() && m.panelFocused() {
			m.setFocus(focusList)
		}
		return m, nil

	case refreshTickMsg:
		m.refreshLeads()
		m.resizeLists()
		if !m.console.PanelOpen() && m.panelFocused() {
			m.setFocus(focusList)
		}
		return m, refreshTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case m.focus == focusSearch:
		return m.handleSearchKey(msg)
	case m.panelFocused():
		return m.handlePanelKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.setFocus(focusSearch)
		return m, nil

	case "r":
		if m.console.LoadError() != nil {
			return m, m.loadLeadsCmd()
		}
		return m, nil

	case "s":
		status := nextStatusFilter(m.console.Filters().Status)
		_ = m.console.UpdateFilters(ctx, lead.FilterPatch{Status: &status})
		m.refreshLeads()
		return m, nil

	case "t":
		field := nextSortField(m.console.Filters().SortBy)
		_ = m.console.UpdateFilters(ctx, lead.FilterPatch{SortBy: &field})
		m.refreshLeads()
		return m, nil

	case "o":
		order := lead.SortAsc
		if m.console.Filters().SortOrder == lead.SortAsc {
			order = lead.SortDesc
		}
		_ = m.console.UpdateFilters(ctx, lead.FilterPatch{SortOrder: &order})
		m.refreshLeads()
		return m, nil

	case "enter":
		if it, ok := m.leadsList.SelectedItem().(leadItem); ok {
			m.console.SelectLead(it.lead)
			m.seedPanelInputs()
			m.setFocus(focusName)
			m.resizeLists()
		}
		return m, nil

	case "esc":
		if m.console.PanelOpen() {
			m.console.ClosePanel()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.leadsList, cmd = m.leadsList.Update(msg)
	return m, cmd
}

func (m appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.setFocus(focusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	search := m.searchInput.Value()
	_ = m.console.UpdateFilters(context.Background(), lead.FilterPatch{Search: &search})
	m.refreshLeads()
	return m, cmd
}

func (m appModel) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	edit := m.console.Edit()

	switch msg.Type {
	case tea.KeyEsc:
		m.console.ClosePanel()
		m.setFocus(focusList)
		return m, nil

	case tea.KeyTab:
		m.setFocus(m.cycleField(1))
		return m, nil

	case tea.KeyShiftTab:
		m.setFocus(m.cycleField(-1))
		return m, nil

	case tea.KeyEnter:
		if !edit.Saving() {
			return m, m.saveCmd()
		}
		return m, nil

	case tea.KeyCtrlO:
		if !edit.Converting() {
			return m, m.convertCmd()
		}
		return m, nil
	}

	if m.focus == focusStatus {
		switch msg.String() {
		case "left", "h":
			edit.SetField(console.FieldStatus, string(nextStatus(edit.Draft().Status, -1)))
		case "right", "l", " ":
			edit.SetField(console.FieldStatus, string(nextStatus(edit.Draft().Status, 1)))
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		edit.SetField(console.FieldName, m.nameInput.Value())
	case focusEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
		edit.SetField(console.FieldEmail, m.emailInput.Value())
	case focusCompany:
		m.companyInput, cmd = m.companyInput.Update(msg)
		edit.SetField(console.FieldCompany, m.companyInput.Value())
	case focusAmount:
		m.amountInput, cmd = m.amountInput.Update(msg)
		edit.SetAmountText(m.amountInput.Value())
	}
	return m, cmd
}

// cycleField steps the panel focus through the Tab order.
func (m appModel) cycleField(step int) focusTarget {
	for i, f := range panelFields {
		if f == m.focus {
			next := (i + step + len(panelFields)) % len(panelFields)
			return panelFields[next]
		}
	}
	return panelFields[0]
}

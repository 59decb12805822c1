package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ganot/seller-console/internal/domain/lead"
)

const panelWidth = 44

func (m *appModel) resizeLists() {
	listWidth := m.width
	if m.console.PanelOpen() {
		listWidth = m.width - panelWidth - 2
	}
	if listWidth < 20 {
		listWidth = 20
	}
	height := m.height - 5
	if height < 3 {
		height = 3
	}
	m.leadsList.SetSize(listWidth, height)
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	body := m.bodyView()
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m appModel) headerView() string {
	f := m.console.Filters()
	title := styleTitle.Render("Seller Console")

	search := f.Search
	if m.focus == focusSearch {
		search = m.searchInput.View()
	} else if search == "" {
		search = "-"
	}

	summary := styleMuted.Render(fmt.Sprintf(
		"search: %s   status: %s   sort: %s %s", search, f.Status, f.SortBy, f.SortOrder))
	return title + "  " + summary
}

func (m appModel) bodyView() string {
	if m.console.Loading() {
		return styleMuted.Render("Loading leads…")
	}
	if err := m.console.LoadError(); err != nil {
		return styleError.Render("Failed to load leads. Please try again.") + " " + styleMuted.Render("Press r to retry.")
	}

	listView := m.leadsList.View()
	if len(m.leadsList.Items()) == 0 {
		listView = styleMuted.Render("No leads match the current filters.")
	}

	if !m.console.PanelOpen() {
		return listView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, listView, "  ", m.panelView())
}

func (m appModel) panelView() string {
	sel := m.console.Selected()
	if sel == nil {
		return ""
	}
	edit := m.console.Edit()
	fieldErrors := edit.FieldErrors()

	var b strings.Builder
	b.WriteString(styleTitle.Render(sel.Name))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("score %d · source %s", sel.Score, sel.Source)))
	b.WriteString("\n\n")

	b.WriteString(m.fieldView("Name", m.nameInput.View(), focusName, fieldErrors["name"]))
	b.WriteString(m.fieldView("Email", m.emailInput.View(), focusEmail, fieldErrors["email"]))
	b.WriteString(m.fieldView("Company", m.companyInput.View(), focusCompany, fieldErrors["company"]))
	b.WriteString(m.statusFieldView(edit.Draft().Status))
	b.WriteString(m.fieldView("Amount", m.amountInput.View(), focusAmount, ""))

	if msg := edit.SaveError(); msg != "" {
		b.WriteString(styleError.Render(msg))
		b.WriteString("\n")
	}
	switch {
	case edit.Saving():
		b.WriteString(styleMuted.Render("Saving…"))
		b.WriteString("\n")
	case edit.Converting():
		b.WriteString(styleMuted.Render("Converting…"))
		b.WriteString("\n")
	case edit.Dirty():
		b.WriteString(styleMuted.Render("Unsaved changes"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted.Render("enter save · ctrl+o convert · tab next field · esc close"))

	return stylePanelBorder.Width(panelWidth).Render(b.String())
}

func (m appModel) fieldView(label, input string, focus focusTarget, fieldErr string) string {
	style := styleLabel
	if m.focus == focus {
		style = styleFocused
	}
	out := style.Render(padOrTrim(label, 8)) + input + "\n"
	if fieldErr != "" {
		out += styleError.Render("        "+fieldErr) + "\n"
	}
	return out
}

func (m appModel) statusFieldView(status lead.Status) string {
	style := styleLabel
	value := string(status)
	if m.focus == focusStatus {
		style = styleFocused
		value = "< " + value + " >"
	}
	return style.Render(padOrTrim("Status", 8)) + value + "\n"
}

func (m appModel) footerView() string {
	if msg := m.console.Feedback(); msg != "" {
		style := styleFeedback
		if strings.HasPrefix(msg, "Failed") {
			style = styleError
		}
		return style.Render(msg)
	}

	oppCount := len(m.console.Opportunities())
	leadCount := len(m.leadsList.Items())
	counts := fmt.Sprintf("%d leads · %d opportunities", leadCount, oppCount)
	help := "enter open · / search · s status · t sort · o order · q quit"
	return styleMuted.Render(counts + "   " + help)
}

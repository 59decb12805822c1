package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ganot/seller-console/internal/domain/lead"
)

type leadItem struct {
	lead lead.Lead
}

func (i leadItem) FilterValue() string { return "" }

// leadRow lays one lead out as a fixed-column row: score, name, company,
// status.
func leadRow(l lead.Lead, width int) string {
	row := fmt.Sprintf("%3d  %s  %s  %s",
		l.Score,
		padOrTrim(l.Name, 22),
		padOrTrim(l.Company, 18),
		l.Status,
	)
	return padOrTrim(row, width)
}

func padOrTrim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

type leadDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newLeadDelegate() leadDelegate {
	return leadDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(ac("235", "255")).
			Background(ac("254", "236")).
			Bold(true),
	}
}

func (d leadDelegate) Height() int                             { return 1 }
func (d leadDelegate) Spacing() int                            { return 0 }
func (d leadDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d leadDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(leadItem)
	if !ok {
		return
	}
	width := m.Width()
	if width < 8 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	fmt.Fprint(w, style.Render(leadRow(it.lead, width)))
}

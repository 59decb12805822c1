package tui

import "github.com/charmbracelet/lipgloss"

// The UI must stay readable on both light and dark terminal backgrounds, so
// every color is an AdaptiveColor pair.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   = ac("240", "245")
	colorAccent  = ac("27", "39")
	colorError   = ac("160", "203")
	colorSuccess = ac("28", "78")

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleFeedback = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleLabel    = lipgloss.NewStyle().Foreground(colorMuted)
	styleFocused  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)
)

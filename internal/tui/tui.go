package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ganot/seller-console/internal/console"
)

// Run starts the interactive console UI and blocks until the user quits.
func Run(c *console.Console) error {
	m := newAppModel(c)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

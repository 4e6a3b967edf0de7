package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/termcoord/internal/coordinator"
)

// Run builds a dashboard Model over coord and blocks until the user quits.
func Run(coord *coordinator.Coordinator) error {
	m, err := New(coord)
	if err != nil {
		return fmt.Errorf("starting state-store watcher: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

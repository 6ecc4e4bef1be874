package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"kakeibo/internal/service"
)

// Run starts the interactive interface against the given store and blocks
// until the user quits.
func Run(store service.Storage) error {
	program := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal interface failed: %w", err)
	}
	return nil
}

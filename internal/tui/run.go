package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Run starts the browser full screen and blocks until the user quits.
func Run(snap *types.Snapshot, opts Options) error {
	p := tea.NewProgram(New(snap, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package viewer is a terminal browser for the converged structures of a
// scan, one entry per jobfolder whose run converged.
package viewer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomsim/jobtool/internal/traj"
)

// Entry is one converged jobfolder shown in the viewer. A trajectory that
// could not be read keeps its entry, with the error shown in the detail pane.
type Entry struct {
	Path      string
	Structure *traj.AtomicStructure
	Err       error
}

// Model is the viewer application model
type Model struct {
	entries  []Entry
	selected int
	scroll   int

	width  int
	height int
}

// NewModel creates a viewer over the given entries
func NewModel(entries []Entry) Model {
	return Model{entries: entries}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Run opens the viewer and blocks until the user quits
func Run(entries []Entry) error {
	p := tea.NewProgram(NewModel(entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

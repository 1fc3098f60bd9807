package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const detailPaneHeight = 12

var (
	headerStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255")).
		Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	rowStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	detailStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	dimmedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	statusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255"))
)

// View renders the viewer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if len(m.entries) == 0 {
		return "No converged jobfolders found.\n\nPress q to quit."
	}

	var b strings.Builder

	header := fmt.Sprintf(" Converged structures │ %d/%d ", m.selected+1, len(m.entries))
	b.WriteString(headerStyle.Width(m.width).Render(header))
	b.WriteString("\n")

	end := min(m.scroll+m.visibleRows(), len(m.entries))
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString(detailStyle.Width(m.width - 2).Render(m.renderDetail()))
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Width(m.width).Render(" j/k: move │ g/G: first/last │ q: quit "))

	return b.String()
}

func (m Model) renderRow(i int) string {
	entry := m.entries[i]

	label := entry.Path
	switch {
	case entry.Err != nil:
		label += "  " + errorStyle.Render("(unreadable)")
	case entry.Structure != nil:
		label += "  " + dimmedStyle.Render(entry.Structure.Formula())
	}

	if i == m.selected {
		return selectedStyle.Render("> " + label)
	}
	return rowStyle.Render("  " + label)
}

func (m Model) renderDetail() string {
	entry := m.entries[m.selected]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", entry.Path)

	if entry.Err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("trajectory unreadable: %v", entry.Err)))
		return b.String()
	}
	s := entry.Structure
	if s == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "%s │ %d atoms", s.Formula(), len(s.Atoms))
	if s.Comment != "" {
		fmt.Fprintf(&b, " │ %s", dimmedStyle.Render(s.Comment))
	}
	b.WriteString("\n\n")

	shown := min(len(s.Atoms), detailPaneHeight-5)
	for _, atom := range s.Atoms[:shown] {
		fmt.Fprintf(&b, "  %-3s %10.4f %10.4f %10.4f\n", atom.Symbol, atom.X, atom.Y, atom.Z)
	}
	if shown < len(s.Atoms) {
		b.WriteString(dimmedStyle.Render(fmt.Sprintf("  … %d more atoms", len(s.Atoms)-shown)))
	}
	return b.String()
}

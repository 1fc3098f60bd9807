package viewer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
			if m.selected >= m.scroll+m.visibleRows() {
				m.scroll = m.selected - m.visibleRows() + 1
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
			if m.selected < m.scroll {
				m.scroll = m.selected
			}
		case "g", "home":
			m.selected = 0
			m.scroll = 0
		case "G", "end":
			m.selected = len(m.entries) - 1
			if m.selected >= m.visibleRows() {
				m.scroll = m.selected - m.visibleRows() + 1
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.scroll > m.selected {
			m.scroll = m.selected
		}
	}
	return m, nil
}

// visibleRows is how many list rows fit between header and detail pane
func (m Model) visibleRows() int {
	rows := m.height - detailPaneHeight - 3
	if rows < 1 {
		return 1
	}
	return rows
}

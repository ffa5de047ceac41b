package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.focus = (m.focus + len(m.sliders) - 1) % len(m.sliders)
		case key.Matches(msg, m.keys.Down):
			m.focus = (m.focus + 1) % len(m.sliders)
		case key.Matches(msg, m.keys.Left):
			m.sliders[m.focus].decrement()
			m.simulate()
		case key.Matches(msg, m.keys.Right):
			m.sliders[m.focus].increment()
			m.simulate()
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

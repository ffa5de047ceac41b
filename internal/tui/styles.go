package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("12")
	colorAccent  = lipgloss.Color("14")
	colorMuted   = lipgloss.Color("8")
	colorGood    = lipgloss.Color("10")
	colorWarn    = lipgloss.Color("11")
	colorBad     = lipgloss.Color("9")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	focusedValueStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	trackStyle = lipgloss.NewStyle().Foreground(colorMuted)
	thumbStyle = lipgloss.NewStyle().Foreground(colorAccent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)

	metricLabelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	chartStyle       = lipgloss.NewStyle().Foreground(colorAccent)
)

// scoreStyle colors a readiness or success figure by how healthy it is.
func scoreStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	case pct >= 60:
		return lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	}
}

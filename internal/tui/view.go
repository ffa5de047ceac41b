package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthfi/hearth/internal/montecarlo"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// View implements tea.Model.
func (m Model) View() string {
	var params strings.Builder
	for i := range m.sliders {
		params.WriteString(m.sliders[i].render(i == m.focus))
		if i < len(m.sliders)-1 {
			params.WriteString("\n\n")
		}
	}

	left := panelStyle.Render(params.String())
	right := panelStyle.Render(m.resultsView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Hearth — retirement what-if"),
		body,
		"",
		m.help.View(m.keys),
	)
}

func (m Model) resultsView() string {
	if m.err != nil {
		return scoreStyle(0).Render(fmt.Sprintf("simulation error: %v", m.err))
	}
	if m.result == nil {
		return labelStyle.Render("no results yet")
	}
	r := m.result

	var b strings.Builder
	success, _ := r.SuccessRate.Float64()

	fmt.Fprintf(&b, "%s %s\n", metricLabelStyle.Render("Success rate    "),
		scoreStyle(success).Render(r.SuccessRate.StringFixed(1)+"%"))
	fmt.Fprintf(&b, "%s %s\n", metricLabelStyle.Render("Readiness score "),
		scoreStyle(float64(r.ReadinessScore)).Render(fmt.Sprintf("%d / 100", r.ReadinessScore)))
	fmt.Fprintf(&b, "%s %s\n", metricLabelStyle.Render("Median at ret.  "),
		valueStyle.Render("$"+r.MedianPortfolioAtRetirement.StringFixed(0)))
	fmt.Fprintf(&b, "%s %s\n", metricLabelStyle.Render("Median at end   "),
		valueStyle.Render("$"+r.MedianPortfolioAtEnd.StringFixed(0)))
	if r.MedianDepletionAge != nil {
		fmt.Fprintf(&b, "%s %s\n", metricLabelStyle.Render("Median depletion"),
			scoreStyle(0).Render(fmt.Sprintf("age %d", *r.MedianDepletionAge)))
	}

	b.WriteString("\n")
	b.WriteString(metricLabelStyle.Render("Median balance by age"))
	b.WriteString("\n")
	b.WriteString(chartStyle.Render(sparkline(r.Projections)))

	if len(r.Projections) > 0 {
		first := r.Projections[0].Age
		last := r.Projections[len(r.Projections)-1].Age
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-3d%*d", first, len(r.Projections)-3, last)))
	}

	return b.String()
}

// sparkline plots the p50 band, one glyph per simulated age.
func sparkline(points []montecarlo.ProjectionPoint) string {
	if len(points) == 0 {
		return ""
	}

	max := 0.0
	values := make([]float64, len(points))
	for i, p := range points {
		values[i], _ = p.P50.Float64()
		if values[i] > max {
			max = values[i]
		}
	}
	if max == 0 {
		return strings.Repeat(string(sparks[0]), len(points))
	}

	var out strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(sparks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparks)-1 {
			idx = len(sparks) - 1
		}
		out.WriteRune(sparks[idx])
	}
	return out.String()
}

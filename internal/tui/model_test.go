package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/montecarlo"
)

func whatIfScenario() domain.Scenario {
	return domain.Scenario{
		Name:                    "what-if",
		CurrentAge:              55,
		RetirementAge:           65,
		LifeExpectancy:          90,
		AnnualSpending:          decimal.NewFromInt(60000),
		PreRetirementReturnPct:  decimal.NewFromFloat(7.0),
		PostRetirementReturnPct: decimal.NewFromFloat(5.0),
		VolatilityPct:           decimal.NewFromFloat(12.0),
		InflationPct:            decimal.NewFromFloat(3.0),
		CurrentPortfolio:        decimal.NewFromInt(800000),
		AnnualAdditions:         decimal.NewFromInt(20000),
		NumSimulations:          40,
	}
}

func TestSliderStepsAndClamps(t *testing.T) {
	s := newSlider("test", 5, 0, 10, 1, "%", "%.0f")

	s.increment()
	assert.Equal(t, 6.0, s.value)
	s.decrement()
	s.decrement()
	assert.Equal(t, 4.0, s.value)

	for i := 0; i < 20; i++ {
		s.increment()
	}
	assert.Equal(t, 10.0, s.value, "clamped at max")

	for i := 0; i < 20; i++ {
		s.decrement()
	}
	assert.Equal(t, 0.0, s.value, "clamped at min")

	assert.Equal(t, 0.0, s.percentage())
	s.value = 10
	assert.Equal(t, 1.0, s.percentage())
}

func TestNewModelRunsInitialSimulation(t *testing.T) {
	m := New(montecarlo.NewEngine(), whatIfScenario())

	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.Equal(t, 40, m.result.NumSimulations)
	assert.Equal(t, int64(quickSeed), m.result.Seed)
	assert.Len(t, m.sliders, numSliders)
}

func TestScenarioClampsRetirementAge(t *testing.T) {
	m := New(montecarlo.NewEngine(), whatIfScenario())

	m.sliders[idxRetirementAge].value = 50 // below current age 55
	scen := m.scenario()
	assert.Equal(t, 55, scen.RetirementAge)

	m.sliders[idxRetirementAge].value = 75
	scen = m.scenario()
	assert.Equal(t, 75, scen.RetirementAge)
}

func TestUpdateAdjustsAndResimulates(t *testing.T) {
	m := New(montecarlo.NewEngine(), whatIfScenario())
	before := m.sliders[m.focus].value

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	updated := next.(Model)
	assert.Equal(t, before+m.sliders[m.focus].step, updated.sliders[updated.focus].value)
	require.NotNil(t, updated.result)

	next, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	moved := next.(Model)
	assert.Equal(t, (updated.focus+1)%numSliders, moved.focus)

	_, cmd := moved.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd, "quit key returns a command")
}

func TestViewRendersMetrics(t *testing.T) {
	m := New(montecarlo.NewEngine(), whatIfScenario())

	out := m.View()
	assert.Contains(t, out, "retirement what-if")
	assert.Contains(t, out, "Success rate")
	assert.Contains(t, out, "Readiness score")
	assert.Contains(t, out, "Retirement age")
}

func TestSparkline(t *testing.T) {
	points := []montecarlo.ProjectionPoint{
		{P50: decimal.Zero},
		{P50: decimal.NewFromInt(500000)},
		{P50: decimal.NewFromInt(1000000)},
	}
	line := sparkline(points)
	runes := []rune(line)
	require.Len(t, runes, 3)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[2])

	assert.Equal(t, "", sparkline(nil))
	flat := sparkline([]montecarlo.ProjectionPoint{{P50: decimal.Zero}, {P50: decimal.Zero}})
	assert.Equal(t, "▁▁", flat)
}

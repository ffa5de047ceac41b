// Package tui is the interactive what-if mode: parameter sliders on the
// left, live quick-simulation results on the right. Every adjustment reruns
// the reduced-model projection with a pinned seed, so the numbers move only
// because the inputs did.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/montecarlo"
)

// quickSeed pins the random source so slider moves compare like-for-like.
const quickSeed = 424242

// Slider order in the panel.
const (
	idxRetirementAge = iota
	idxSpending
	idxPreReturn
	idxPostReturn
	idxVolatility
	idxInflation
	idxSocialSecurity
	numSliders
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous parameter")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next parameter")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Left, k.Right}, {k.Quit}}
}

// Model is the bubbletea model for the what-if screen.
type Model struct {
	engine  *montecarlo.Engine
	base    domain.Scenario
	sliders []slider
	focus   int

	result *montecarlo.Result
	err    error

	keys keyMap
	help help.Model
}

// New builds the model around a starting scenario and runs the first
// simulation so the screen opens populated.
func New(engine *montecarlo.Engine, base domain.Scenario) Model {
	sliders := make([]slider, numSliders)
	sliders[idxRetirementAge] = newSlider("Retirement age", float64(base.RetirementAge), 50, 75, 1, " yrs", "%.0f")
	sliders[idxSpending] = newSlider("Annual spending", base.AnnualSpending.InexactFloat64(), 20000, 250000, 5000, "", "$%.0f")
	sliders[idxPreReturn] = newSlider("Pre-retirement return", base.PreRetirementReturnPct.InexactFloat64(), 0, 12, 0.5, "%", "%.1f")
	sliders[idxPostReturn] = newSlider("Post-retirement return", base.PostRetirementReturnPct.InexactFloat64(), 0, 10, 0.5, "%", "%.1f")
	sliders[idxVolatility] = newSlider("Volatility", base.VolatilityPct.InexactFloat64(), 0, 25, 0.5, "%", "%.1f")
	sliders[idxInflation] = newSlider("Inflation", base.InflationPct.InexactFloat64(), 0, 8, 0.25, "%", "%.2f")
	sliders[idxSocialSecurity] = newSlider("Social Security / mo", base.SocialSecurityMonthly.InexactFloat64(), 0, 6000, 100, "", "$%.0f")

	m := Model{
		engine:  engine,
		base:    base,
		sliders: sliders,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.simulate()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// scenario assembles the current slider values over the base scenario.
func (m *Model) scenario() domain.Scenario {
	scen := m.base
	scen.RetirementAge = int(m.sliders[idxRetirementAge].value)
	scen.AnnualSpending = decimal.NewFromFloat(m.sliders[idxSpending].value)
	scen.PreRetirementReturnPct = decimal.NewFromFloat(m.sliders[idxPreReturn].value)
	scen.PostRetirementReturnPct = decimal.NewFromFloat(m.sliders[idxPostReturn].value)
	scen.VolatilityPct = decimal.NewFromFloat(m.sliders[idxVolatility].value)
	scen.InflationPct = decimal.NewFromFloat(m.sliders[idxInflation].value)
	scen.SocialSecurityMonthly = decimal.NewFromFloat(m.sliders[idxSocialSecurity].value)

	// Keep the age window simulatable while the slider crosses bounds.
	if scen.RetirementAge < scen.CurrentAge {
		scen.RetirementAge = scen.CurrentAge
	}
	if scen.RetirementAge > scen.LifeExpectancy {
		scen.RetirementAge = scen.LifeExpectancy
	}
	return scen
}

func (m *Model) simulate() {
	scen := m.scenario()
	result, err := m.engine.Run(context.Background(), &scen, nil, montecarlo.Config{
		Mode: montecarlo.ModeQuick,
		Seed: quickSeed,
	})
	m.result, m.err = result, err
}

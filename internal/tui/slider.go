package tui

import (
	"fmt"
	"math"
	"strings"
)

// slider is one adjustable what-if parameter.
type slider struct {
	label  string
	value  float64
	min    float64
	max    float64
	step   float64
	unit   string
	format string
	width  int
}

func newSlider(label string, value, min, max, step float64, unit, format string) slider {
	return slider{
		label:  label,
		value:  value,
		min:    min,
		max:    max,
		step:   step,
		unit:   unit,
		format: format,
		width:  24,
	}
}

func (s *slider) increment() {
	if v := s.value + s.step; v <= s.max {
		s.value = v
	}
}

func (s *slider) decrement() {
	if v := s.value - s.step; v >= s.min {
		s.value = v
	}
}

func (s *slider) percentage() float64 {
	if s.max == s.min {
		return 0
	}
	return (s.value - s.min) / (s.max - s.min)
}

func (s *slider) render(focused bool) string {
	label := labelStyle
	value := valueStyle
	thumb := thumbStyle
	if focused {
		label = focusedLabelStyle
		value = focusedValueStyle
	}

	valueStr := fmt.Sprintf(s.format, s.value) + s.unit

	filled := int(math.Round(float64(s.width) * s.percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > s.width-1 {
		filled = s.width - 1
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 0 {
		bar.WriteString(thumb.Render(strings.Repeat("━", filled)))
	}
	bar.WriteString(thumb.Render("●"))
	if rest := s.width - filled - 1; rest > 0 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")

	return fmt.Sprintf("%s\n%s %s", label.Render(s.label), bar.String(), value.Render(valueStr))
}

package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/montecarlo"
)

// ConsoleFormatter renders a human-readable summary and percentile table.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *montecarlo.Result) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Retirement Projection: %s\n", result.ScenarioName)
	fmt.Fprintf(&buf, "%d simulations (seed %d)\n\n", result.NumSimulations, result.Seed)

	fmt.Fprintf(&buf, "Success rate:          %s%%\n", result.SuccessRate.StringFixed(1))
	fmt.Fprintf(&buf, "Readiness score:       %d / 100\n", result.ReadinessScore)
	fmt.Fprintf(&buf, "Median at retirement:  %s\n", money(result.MedianPortfolioAtRetirement))
	fmt.Fprintf(&buf, "Median at end of plan: %s\n", money(result.MedianPortfolioAtEnd))
	if result.MedianDepletionAge != nil {
		fmt.Fprintf(&buf, "Median depletion age:  %d\n", *result.MedianDepletionAge)
	}
	if result.EstimatedPIA != nil {
		fmt.Fprintf(&buf, "Estimated PIA:         %s/mo\n", money(*result.EstimatedPIA))
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "%-5s %15s %15s %15s %15s %15s %10s\n",
		"Age", "P10", "P25", "P50", "P75", "P90", "Depleted")
	for _, p := range result.Projections {
		fmt.Fprintf(&buf, "%-5d %15s %15s %15s %15s %15s %9s%%\n",
			p.Age, money(p.P10), money(p.P25), money(p.P50), money(p.P75), money(p.P90),
			p.DepletionPct.StringFixed(1))
	}

	if cmp := result.WithdrawalComparison; cmp != nil {
		buf.WriteString("\nWithdrawal order comparison\n")
		for _, s := range cmp.Strategies {
			marker := " "
			if s.Name == cmp.Recommended {
				marker = "*"
			}
			fmt.Fprintf(&buf, "%s %-14s ending %15s  taxes %15s  lasted %d years\n",
				marker, s.Name, money(s.EndingBalance), money(s.TotalTaxesPaid), s.YearsLasted)
		}
	}

	return buf.Bytes(), nil
}

// money renders a dollar amount with thousands separators.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	prefix := "$"
	if neg {
		prefix = "-$"
	}
	return prefix + string(out) + frac
}

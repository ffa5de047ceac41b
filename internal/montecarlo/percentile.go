package montecarlo

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProjectionPoint is the cross-trial distribution of balances at one age,
// plus the cumulative probability that the portfolio has depleted by then.
// Percentiles are sorted by construction: P10 <= P25 <= P50 <= P75 <= P90.
type ProjectionPoint struct {
	Age          int             `json:"age"`
	P10          decimal.Decimal `json:"p10"`
	P25          decimal.Decimal `json:"p25"`
	P50          decimal.Decimal `json:"p50"`
	P75          decimal.Decimal `json:"p75"`
	P90          decimal.Decimal `json:"p90"`
	DepletionPct decimal.Decimal `json:"depletion_pct"`

	IncomeSources *IncomeBreakdown `json:"income_sources,omitempty"`
}

// IncomeBreakdown is the deterministic guaranteed income applied at one age,
// already inflation-adjusted. Attached to retirement-year projection points.
type IncomeBreakdown struct {
	SocialSecurity       decimal.Decimal `json:"social_security"`
	SpouseSocialSecurity decimal.Decimal `json:"spouse_social_security"`
	Pension              decimal.Decimal `json:"pension"`
	Total                decimal.Decimal `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// aggregate collapses N equal-length trial paths into one ProjectionPoint
// per year: sorted cross-trial percentiles at fixed ranks and the cumulative
// depletion percentage. Money is rounded to cents, depletion to one decimal.
func aggregate(trials []trialResult, in *runInputs) []ProjectionPoint {
	n := len(trials)
	years := in.totalYears

	points := make([]ProjectionPoint, years+1)
	column := make([]decimal.Decimal, n)

	for y := 0; y <= years; y++ {
		for i, tr := range trials {
			column[i] = tr.balances[y]
		}
		sort.Slice(column, func(a, b int) bool { return column[a].LessThan(column[b]) })

		depleted := 0
		for _, tr := range trials {
			if tr.depletionYear >= 0 && tr.depletionYear <= y {
				depleted++
			}
		}
		depletionPct := decimal.NewFromInt(int64(depleted)).Mul(hundred).
			Div(decimal.NewFromInt(int64(n))).Round(1)

		p := ProjectionPoint{
			Age:          in.currentAge + y,
			P10:          column[rank(n, 0.10)].Round(2),
			P25:          column[rank(n, 0.25)].Round(2),
			P50:          column[rank(n, 0.50)].Round(2),
			P75:          column[rank(n, 0.75)].Round(2),
			P90:          column[rank(n, 0.90)].Round(2),
			DepletionPct: depletionPct,
		}

		if age := in.currentAge + y; age > in.retirementAge && len(in.incomes) > 0 {
			p.IncomeSources = incomeBreakdownAt(in.incomes, age, in.inflationFactors[y])
		}

		points[y] = p
	}
	return points
}

// rank maps a percentile to a sorted-slice index: floor(q*N), clamped so the
// top percentile stays in range on small N.
func rank(n int, q float64) int {
	i := int(q * float64(n))
	if i > n-1 {
		i = n - 1
	}
	return i
}

func incomeBreakdownAt(sources []incomeSource, age int, inflationFactor decimal.Decimal) *IncomeBreakdown {
	b := &IncomeBreakdown{}
	for _, s := range sources {
		amount := s.contributionAt(age, inflationFactor).Round(2)
		switch s.name {
		case "social_security":
			b.SocialSecurity = b.SocialSecurity.Add(amount)
		case "spouse_social_security":
			b.SpouseSocialSecurity = b.SpouseSocialSecurity.Add(amount)
		case "pension":
			b.Pension = b.Pension.Add(amount)
		}
		b.Total = b.Total.Add(amount)
	}
	return b
}

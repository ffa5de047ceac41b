package montecarlo

import "github.com/shopspring/decimal"

// incomeSource is one guaranteed monthly income stream with a claiming age.
// Every stream - Social Security, spousal benefit, pension - contributes
// through the same method, so the per-year loop just sums sources without
// per-stream nil checks.
type incomeSource struct {
	name     string
	monthly  decimal.Decimal
	startAge int
}

var months = decimal.NewFromInt(12)

// contributionAt returns the inflation-adjusted annual amount at an age, or
// zero before the stream's start age.
func (s incomeSource) contributionAt(age int, inflationFactor decimal.Decimal) decimal.Decimal {
	if age < s.startAge || !s.monthly.IsPositive() {
		return decimal.Zero
	}
	return s.monthly.Mul(months).Mul(inflationFactor)
}

// totalIncomeAt sums all sources for an age.
func totalIncomeAt(sources []incomeSource, age int, inflationFactor decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		total = total.Add(s.contributionAt(age, inflationFactor))
	}
	return total
}

package montecarlo

import "github.com/shopspring/decimal"

// Readiness score weights. Fixed design decision, not user-configurable:
// half the score is simulation success, the rest splits between expense
// coverage and savings behavior.
var (
	successWeight  = decimal.NewFromFloat(0.50)
	coverageWeight = decimal.NewFromFloat(0.30)
	savingsWeight  = decimal.NewFromFloat(0.20)
)

// ReadinessScore blends success rate, expense coverage, and savings rate
// into a single 0-100 composite. successRate is already on a 0-100 scale.
// Ratio denominators of zero fall back locally; the scorer always produces
// a score.
func ReadinessScore(successRate, currentPortfolio, annualSpending decimal.Decimal, yearsInRetirement int, annualSavings, annualIncome decimal.Decimal) int {
	one := decimal.NewFromInt(1)

	// Coverage: portfolio relative to total retirement spending need.
	years := yearsInRetirement
	if years < 1 {
		years = 1
	}
	need := annualSpending.Mul(decimal.NewFromInt(int64(years)))
	if !need.IsPositive() {
		need = one
	}
	coverage := currentPortfolio.Div(need)
	if coverage.GreaterThan(one) {
		coverage = one
	}

	// Savings rate, with fallbacks when income is unknown.
	var savingsRate decimal.Decimal
	switch {
	case annualIncome.IsPositive():
		savingsRate = annualSavings.Div(annualIncome)
		if savingsRate.GreaterThan(one) {
			savingsRate = one
		}
	case annualSavings.IsPositive():
		savingsRate = decimal.NewFromFloat(0.5)
	}

	score := successRate.Mul(successWeight).
		Add(coverage.Mul(hundred).Mul(coverageWeight)).
		Add(savingsRate.Mul(hundred).Mul(savingsWeight))

	n := int(score.Round(0).IntPart())
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n
}

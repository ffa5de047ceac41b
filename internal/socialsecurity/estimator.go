// Package socialsecurity estimates a Social Security retirement benefit from
// current salary when the household has not supplied one. It is a planning
// approximation: current salary stands in for the career-average indexed
// earnings an SSA statement would use.
package socialsecurity

import "github.com/shopspring/decimal"

// Benefit is the estimate returned to the projection engine.
type Benefit struct {
	Monthly      decimal.Decimal `json:"monthly_benefit"`
	EstimatedPIA decimal.Decimal `json:"estimated_pia"`
}

// 2025 PIA bend points and replacement rates.
var (
	bendPoint1 = decimal.NewFromInt(1226)
	bendPoint2 = decimal.NewFromInt(7391)
	rate1      = decimal.NewFromFloat(0.90)
	rate2      = decimal.NewFromFloat(0.32)
	rate3      = decimal.NewFromFloat(0.15)

	// Monthly earnings above the taxable maximum do not accrue benefits.
	monthlyEarningsCap = decimal.NewFromInt(14700)
)

// FullRetirementAge returns the FRA for a birth year. Everyone born 1960 or
// later has FRA 67; the 1955-1959 two-month steps are collapsed to the
// nearest whole year, which is as fine-grained as the whole-year engine gets.
func FullRetirementAge(birthYear int) int {
	switch {
	case birthYear >= 1960:
		return 67
	case birthYear >= 1955:
		return 66
	default:
		return 65
	}
}

// EstimatePIA computes the Primary Insurance Amount from current salary via
// the bend-point formula, treating monthly salary as AIME.
func EstimatePIA(currentSalary decimal.Decimal) decimal.Decimal {
	aime := currentSalary.Div(decimal.NewFromInt(12))
	if aime.GreaterThan(monthlyEarningsCap) {
		aime = monthlyEarningsCap
	}
	if !aime.IsPositive() {
		return decimal.Zero
	}

	pia := decimal.Zero
	if aime.LessThanOrEqual(bendPoint1) {
		pia = aime.Mul(rate1)
	} else if aime.LessThanOrEqual(bendPoint2) {
		pia = bendPoint1.Mul(rate1).
			Add(aime.Sub(bendPoint1).Mul(rate2))
	} else {
		pia = bendPoint1.Mul(rate1).
			Add(bendPoint2.Sub(bendPoint1).Mul(rate2)).
			Add(aime.Sub(bendPoint2).Mul(rate3))
	}
	return pia.Round(2)
}

// AdjustForClaimingAge applies the early-claiming reduction (5/9 of 1% per
// month for the first 36 months, 5/12 of 1% beyond) or delayed retirement
// credits (2/3 of 1% per month, capped at age 70) to a PIA.
func AdjustForClaimingAge(pia decimal.Decimal, birthYear, claimingAge int) decimal.Decimal {
	fra := FullRetirementAge(birthYear)
	one := decimal.NewFromInt(1)

	switch {
	case claimingAge < 62:
		return decimal.Zero
	case claimingAge < fra:
		monthsEarly := (fra - claimingAge) * 12
		var reduction decimal.Decimal
		if monthsEarly <= 36 {
			reduction = decimal.NewFromFloat(5.0 / 9.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsEarly)))
		} else {
			reduction = decimal.NewFromFloat(5.0 / 9.0 / 100.0).Mul(decimal.NewFromInt(36)).
				Add(decimal.NewFromFloat(5.0 / 12.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsEarly - 36))))
		}
		return pia.Mul(one.Sub(reduction)).Round(2)
	case claimingAge > fra:
		monthsDelayed := (claimingAge - fra) * 12
		if maxMonths := (70 - fra) * 12; monthsDelayed > maxMonths {
			monthsDelayed = maxMonths
		}
		credit := decimal.NewFromFloat(2.0 / 3.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsDelayed)))
		return pia.Mul(one.Add(credit)).Round(2)
	default:
		return pia
	}
}

// EstimateBenefit estimates the monthly benefit for a claiming age. A
// positive piaOverride replaces the salary-derived PIA (for households that
// know their number from an SSA statement). currentAge is accepted for
// interface parity with the statement-based estimator; the whole-year model
// does not need it.
func EstimateBenefit(currentSalary decimal.Decimal, currentAge, birthYear, claimingAge int, piaOverride *decimal.Decimal) Benefit {
	pia := EstimatePIA(currentSalary)
	if piaOverride != nil && piaOverride.IsPositive() {
		pia = *piaOverride
	}
	return Benefit{
		Monthly:      AdjustForClaimingAge(pia, birthYear, claimingAge),
		EstimatedPIA: pia,
	}
}

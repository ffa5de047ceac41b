// Package healthcare estimates annual retiree healthcare costs by coverage
// phase: marketplace coverage before Medicare eligibility at 65, Medicare
// premiums and out-of-pocket after, and an expected long-term-care component
// in late retirement. All outputs are in today's dollars; the projection
// engine owns inflation compounding.
package healthcare

import "github.com/shopspring/decimal"

// CostBreakdown splits an annual estimate by phase. Exactly one of Pre65 or
// Medicare is non-zero for a given age; LongTermCare stacks on top.
type CostBreakdown struct {
	Pre65        decimal.Decimal `json:"pre_65"`
	Medicare     decimal.Decimal `json:"medicare"`
	LongTermCare decimal.Decimal `json:"long_term_care"`
	Total        decimal.Decimal `json:"total"`
}

// CostTables holds the base amounts the estimator works from.
type CostTables struct {
	// Pre-Medicare marketplace coverage: annual premium plus out-of-pocket
	// at the reference age, and the income threshold below which premium
	// subsidies phase in.
	MarketplaceAnnualBase decimal.Decimal
	MarketplaceRefAge     int
	SubsidyIncomeLimit    decimal.Decimal
	MaxSubsidyRate        decimal.Decimal

	// Medicare: Part B + Part D + supplemental premiums (monthly) and
	// expected annual out-of-pocket.
	PartBMonthly        decimal.Decimal
	PartDMonthly        decimal.Decimal
	SupplementalMonthly decimal.Decimal
	MedicareAnnualOOP   decimal.Decimal

	// Long-term care: full annual cost of care and the expected-need rates
	// applied to it by age band.
	LTCAnnualCost  decimal.Decimal
	LTCRate75to84  decimal.Decimal
	LTCRateFrom85  decimal.Decimal
}

// DefaultCostTables returns 2025 baseline amounts.
func DefaultCostTables() CostTables {
	return CostTables{
		MarketplaceAnnualBase: decimal.NewFromInt(11400),
		MarketplaceRefAge:     60,
		SubsidyIncomeLimit:    decimal.NewFromInt(75000),
		MaxSubsidyRate:        decimal.NewFromFloat(0.40),

		PartBMonthly:        decimal.NewFromFloat(174.70),
		PartDMonthly:        decimal.NewFromFloat(46.50),
		SupplementalMonthly: decimal.NewFromFloat(165.00),
		MedicareAnnualOOP:   decimal.NewFromInt(2600),

		LTCAnnualCost: decimal.NewFromInt(112000),
		LTCRate75to84: decimal.NewFromFloat(0.04),
		LTCRateFrom85: decimal.NewFromFloat(0.18),
	}
}

// Estimator produces per-age healthcare cost estimates.
type Estimator struct {
	Tables CostTables
}

// NewEstimator creates an estimator with default cost tables.
func NewEstimator() *Estimator {
	return &Estimator{Tables: DefaultCostTables()}
}

var (
	twelve = decimal.NewFromInt(12)
	one    = decimal.NewFromInt(1)
)

// EstimateAnnualCost estimates the annual healthcare cost at age for a
// retiree with the given annual retirement income. medicalInflation is a
// fractional rate (0.045 for 4.5%) and drives only the marketplace age
// rating curve; calendar inflation is applied by the caller. Set includeLTC
// false to drop the long-term-care component.
func (e *Estimator) EstimateAnnualCost(age int, retirementIncome decimal.Decimal, currentAge int, medicalInflation decimal.Decimal, includeLTC bool) CostBreakdown {
	var b CostBreakdown

	if age < 65 {
		b.Pre65 = e.marketplaceCost(age, retirementIncome, medicalInflation)
	} else {
		b.Medicare = e.Tables.PartBMonthly.
			Add(e.Tables.PartDMonthly).
			Add(e.Tables.SupplementalMonthly).
			Mul(twelve).
			Add(e.Tables.MedicareAnnualOOP)
	}

	if includeLTC {
		b.LongTermCare = e.longTermCareCost(age)
	}

	b.Total = b.Pre65.Add(b.Medicare).Add(b.LongTermCare)
	return b
}

// marketplaceCost age-rates the base premium and applies an income subsidy.
// The rating curve steepens with medical inflation; it models premiums
// rising with the insured's age, not with calendar time.
func (e *Estimator) marketplaceCost(age int, retirementIncome, medicalInflation decimal.Decimal) decimal.Decimal {
	cost := e.Tables.MarketplaceAnnualBase
	if yrs := age - e.Tables.MarketplaceRefAge; yrs > 0 && medicalInflation.IsPositive() {
		cost = cost.Mul(one.Add(medicalInflation).Pow(decimal.NewFromInt(int64(yrs))))
	}

	if retirementIncome.IsPositive() && retirementIncome.LessThan(e.Tables.SubsidyIncomeLimit) {
		// Subsidy scales linearly from MaxSubsidyRate at zero income down
		// to nothing at the income limit.
		shortfall := e.Tables.SubsidyIncomeLimit.Sub(retirementIncome)
		subsidyRate := e.Tables.MaxSubsidyRate.Mul(shortfall.Div(e.Tables.SubsidyIncomeLimit))
		cost = cost.Mul(one.Sub(subsidyRate))
	}
	return cost
}

// longTermCareCost is the expected (probability-weighted) annual LTC cost.
func (e *Estimator) longTermCareCost(age int) decimal.Decimal {
	switch {
	case age >= 85:
		return e.Tables.LTCAnnualCost.Mul(e.Tables.LTCRateFrom85)
	case age >= 75:
		return e.Tables.LTCAnnualCost.Mul(e.Tables.LTCRate75to84)
	default:
		return decimal.Zero
	}
}

package montecarlo

import (
	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/healthcare"
)

// HealthcareEstimator supplies the base annual healthcare estimate for one
// age, before user overrides. Satisfied by healthcare.Estimator.
type HealthcareEstimator interface {
	EstimateAnnualCost(age int, retirementIncome decimal.Decimal, currentAge int, medicalInflation decimal.Decimal, includeLTC bool) healthcare.CostBreakdown
}

// Medicare eligibility and the age where long-term care dominates the
// healthcare picture. Overrides switch on these boundaries.
const (
	medicareAge       = 65
	lateRetirementAge = 85
)

// buildHealthcareSchedule precomputes the today's-dollar annual healthcare
// cost for every retirement age. Entries are indexed age-currentAge and stay
// zero before retirement (pre-retirement coverage is an employment concern,
// not a portfolio withdrawal).
//
// Override policy: a pre-Medicare override replaces the total below 65, a
// Medicare override replaces the total for 65-84, and from 85 the Medicare
// and long-term-care portions are overridden independently and re-summed.
func buildHealthcareSchedule(est HealthcareEstimator, scen *domain.Scenario) []decimal.Decimal {
	schedule := make([]decimal.Decimal, scen.TotalYears()+1)
	medInflation := domain.Rate(scen.MedicalInflationPct)

	start := scen.RetirementAge
	if start < scen.CurrentAge {
		start = scen.CurrentAge
	}

	var ov domain.HealthcareOverrides
	if scen.HealthcareOverrides != nil {
		ov = *scen.HealthcareOverrides
	}

	for age := start; age <= scen.LifeExpectancy; age++ {
		base := est.EstimateAnnualCost(age, scen.AnnualSpending, scen.CurrentAge, medInflation, true)

		var cost decimal.Decimal
		switch {
		case age < medicareAge:
			if ov.PreMedicareAnnual != nil {
				cost = *ov.PreMedicareAnnual
			} else {
				cost = base.Total
			}
		case age < lateRetirementAge:
			if ov.MedicareAnnual != nil {
				cost = *ov.MedicareAnnual
			} else {
				cost = base.Total
			}
		default:
			medicare := base.Medicare
			if ov.MedicareAnnual != nil {
				medicare = *ov.MedicareAnnual
			}
			ltc := base.LongTermCare
			if ov.LongTermCareAnnual != nil {
				ltc = *ov.LongTermCareAnnual
			}
			cost = medicare.Add(ltc)
		}

		schedule[age-scen.CurrentAge] = cost
	}
	return schedule
}

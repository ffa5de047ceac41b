package montecarlo

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/domain"
)

// runInputs is everything a trial needs, materialized once before the trial
// loop starts. Nothing here is mutated during simulation, so trials share it
// freely across goroutines.
type runInputs struct {
	currentAge    int
	retirementAge int
	totalYears    int

	preReturn  float64
	postReturn float64
	volatility float64

	spending      decimal.Decimal
	additions     decimal.Decimal
	startBalance  decimal.Decimal

	// inflationFactors[y] = (1+inflation)^y; medicalFactors likewise.
	inflationFactors []decimal.Decimal
	medicalFactors   []decimal.Decimal

	events     *eventSchedule    // nil in quick mode
	healthcare []decimal.Decimal // today's dollars per age offset; nil in quick mode
	incomes    []incomeSource
}

// materialize flattens a scenario into loop-ready data. quick drops life
// events, healthcare, and pension, leaving the reduced spending-and-Social-
// Security cost model used for interactive what-if runs.
func materialize(scen *domain.Scenario, est HealthcareEstimator, quick bool) *runInputs {
	in := &runInputs{
		currentAge:    scen.CurrentAge,
		retirementAge: scen.RetirementAge,
		totalYears:    scen.TotalYears(),
		preReturn:     domain.Rate(scen.PreRetirementReturnPct).InexactFloat64(),
		postReturn:    domain.Rate(scen.PostRetirementReturnPct).InexactFloat64(),
		volatility:    domain.Rate(scen.VolatilityPct).InexactFloat64(),
		spending:      scen.AnnualSpending,
		additions:     scen.AnnualAdditions,
		startBalance:  scen.CurrentPortfolio,
	}

	in.inflationFactors = compoundFactors(domain.Rate(scen.InflationPct), in.totalYears)
	in.medicalFactors = compoundFactors(domain.Rate(scen.MedicalInflationPct), in.totalYears)

	if scen.SocialSecurityMonthly.IsPositive() {
		startAge := scen.SocialSecurityStartAge
		if startAge == 0 {
			startAge = defaultClaimingAge
		}
		in.incomes = append(in.incomes, incomeSource{name: "social_security", monthly: scen.SocialSecurityMonthly, startAge: startAge})
	}
	if scen.SpouseSocialSecurityMonthly.IsPositive() {
		startAge := scen.SpouseSocialSecurityStartAge
		if startAge == 0 {
			startAge = defaultClaimingAge
		}
		in.incomes = append(in.incomes, incomeSource{name: "spouse_social_security", monthly: scen.SpouseSocialSecurityMonthly, startAge: startAge})
	}

	if !quick {
		if scen.PensionMonthly.IsPositive() {
			in.incomes = append(in.incomes, incomeSource{name: "pension", monthly: scen.PensionMonthly, startAge: scen.RetirementAge})
		}
		in.events = buildEventSchedule(scen.LifeEvents, scen.CurrentAge, scen.LifeExpectancy)
		in.healthcare = buildHealthcareSchedule(est, scen)
	}

	return in
}

// compoundFactors precomputes (1+rate)^y for y = 0..years.
func compoundFactors(rate decimal.Decimal, years int) []decimal.Decimal {
	factors := make([]decimal.Decimal, years+1)
	factors[0] = decimal.NewFromInt(1)
	growth := decimal.NewFromInt(1).Add(rate)
	for y := 1; y <= years; y++ {
		factors[y] = factors[y-1].Mul(growth)
	}
	return factors
}

// trialResult is one simulated lifetime path. balances[0] is the balance at
// the current age; depletionYear is the first year index the balance hit
// zero, or -1 if the portfolio survived.
type trialResult struct {
	balances      []decimal.Decimal
	depletionYear int
}

// runTrial walks one path from the current age to life expectancy. Each year
// draws a return, applies contributions or withdrawals, and clamps to the
// absorbing depleted state once the balance reaches zero.
func runTrial(rng *rand.Rand, in *runInputs) trialResult {
	balances := make([]decimal.Decimal, in.totalYears+1)
	balances[0] = in.startBalance
	depletionYear := -1

	balance := in.startBalance
	one := decimal.NewFromInt(1)

	for y := 1; y <= in.totalYears; y++ {
		if depletionYear >= 0 {
			balances[y] = decimal.Zero
			continue
		}

		age := in.currentAge + y
		accumulating := age <= in.retirementAge

		mean := in.postReturn
		if accumulating {
			mean = in.preReturn
		}
		r := SampleReturn(rng, mean, in.volatility)
		growth := one.Add(decimal.NewFromFloat(r))

		genFactor := in.inflationFactors[y]
		medFactor := in.medicalFactors[y]

		var eventCost decimal.Decimal
		if in.events != nil {
			eventCost = in.events.costAt(age, genFactor, medFactor)
		}

		if accumulating {
			balance = balance.Mul(growth).Add(in.additions).Sub(eventCost)
		} else {
			spending := in.spending.Mul(genFactor)

			var care decimal.Decimal
			if in.healthcare != nil {
				care = in.healthcare[y].Mul(medFactor)
			}

			income := totalIncomeAt(in.incomes, age, genFactor)

			withdrawal := spending.Add(care).Add(eventCost).Sub(income)
			if withdrawal.IsNegative() {
				withdrawal = decimal.Zero
			}
			balance = balance.Mul(growth).Sub(withdrawal)
		}

		if balance.LessThanOrEqual(decimal.Zero) {
			balance = decimal.Zero
			depletionYear = y
		}
		balances[y] = balance
	}

	return trialResult{balances: balances, depletionYear: depletionYear}
}

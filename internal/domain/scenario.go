package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidScenario is wrapped by every scenario validation failure so
// callers can distinguish bad input from engine errors.
var ErrInvalidScenario = errors.New("invalid scenario")

// LifeEvent is a discrete cash-flow change: a one-time cost, a recurring
// annual cost over an age range, an income change, or any combination.
// Amounts are in today's dollars.
type LifeEvent struct {
	Name                string          `yaml:"name" json:"name"`
	StartAge            int             `yaml:"start_age" json:"start_age"`
	EndAge              *int            `yaml:"end_age,omitempty" json:"end_age,omitempty"`
	OneTimeCost         decimal.Decimal `yaml:"one_time_cost,omitempty" json:"one_time_cost"`
	AnnualCost          decimal.Decimal `yaml:"annual_cost,omitempty" json:"annual_cost"`
	IncomeChange        decimal.Decimal `yaml:"income_change,omitempty" json:"income_change"`
	UseMedicalInflation bool            `yaml:"use_medical_inflation,omitempty" json:"use_medical_inflation"`
}

// HealthcareOverrides replaces the estimated healthcare cost for a phase.
// A nil field means "use the estimator's number for that phase".
type HealthcareOverrides struct {
	PreMedicareAnnual  *decimal.Decimal `yaml:"pre_medicare_annual,omitempty" json:"pre_medicare_annual,omitempty"`
	MedicareAnnual     *decimal.Decimal `yaml:"medicare_annual,omitempty" json:"medicare_annual,omitempty"`
	LongTermCareAnnual *decimal.Decimal `yaml:"long_term_care_annual,omitempty" json:"long_term_care_annual,omitempty"`
}

// Scenario is the full input to one Monte Carlo projection run. It is
// immutable for the duration of the run; results are cached keyed on a hash
// of this value, so any field change must produce a different hash.
//
// Percentage fields are whole percents (7.0 means 7%).
type Scenario struct {
	Name string `yaml:"name" json:"name"`

	CurrentAge     int `yaml:"current_age" json:"current_age"`
	RetirementAge  int `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy int `yaml:"life_expectancy" json:"life_expectancy"`

	AnnualSpending decimal.Decimal `yaml:"annual_spending_retirement" json:"annual_spending_retirement"`

	PreRetirementReturnPct  decimal.Decimal `yaml:"pre_retirement_return_pct" json:"pre_retirement_return_pct"`
	PostRetirementReturnPct decimal.Decimal `yaml:"post_retirement_return_pct" json:"post_retirement_return_pct"`
	VolatilityPct           decimal.Decimal `yaml:"volatility_pct" json:"volatility_pct"`
	InflationPct            decimal.Decimal `yaml:"inflation_pct" json:"inflation_pct"`
	MedicalInflationPct     decimal.Decimal `yaml:"medical_inflation_pct" json:"medical_inflation_pct"`

	CurrentPortfolio decimal.Decimal `yaml:"current_portfolio" json:"current_portfolio"`
	AnnualAdditions  decimal.Decimal `yaml:"annual_additions" json:"annual_additions"`

	PensionMonthly               decimal.Decimal `yaml:"pension_monthly,omitempty" json:"pension_monthly"`
	SocialSecurityMonthly        decimal.Decimal `yaml:"social_security_monthly,omitempty" json:"social_security_monthly"`
	SocialSecurityStartAge       int             `yaml:"social_security_start_age,omitempty" json:"social_security_start_age"`
	SpouseSocialSecurityMonthly  decimal.Decimal `yaml:"spouse_social_security_monthly,omitempty" json:"spouse_social_security_monthly"`
	SpouseSocialSecurityStartAge int             `yaml:"spouse_social_security_start_age,omitempty" json:"spouse_social_security_start_age"`

	// CurrentSalary and BirthYear let the engine estimate a Social Security
	// benefit when social_security_monthly is not supplied.
	CurrentSalary decimal.Decimal `yaml:"current_salary,omitempty" json:"current_salary"`
	BirthYear     int             `yaml:"birth_year,omitempty" json:"birth_year"`

	LifeEvents          []LifeEvent          `yaml:"life_events,omitempty" json:"life_events,omitempty"`
	HealthcareOverrides *HealthcareOverrides `yaml:"healthcare_overrides,omitempty" json:"healthcare_overrides,omitempty"`

	// NumSimulations of 0 means "use the engine default" (1000 full, 500 quick).
	NumSimulations int `yaml:"num_simulations,omitempty" json:"num_simulations,omitempty"`
}

// Validate fails fast on scenarios the engine cannot simulate. Invalid ages
// are never silently corrected.
func (s *Scenario) Validate() error {
	if s.LifeExpectancy <= s.CurrentAge {
		return fmt.Errorf("%w: life expectancy (%d) must be greater than current age (%d)",
			ErrInvalidScenario, s.LifeExpectancy, s.CurrentAge)
	}
	if s.RetirementAge < s.CurrentAge || s.RetirementAge > s.LifeExpectancy {
		return fmt.Errorf("%w: retirement age (%d) must be between current age (%d) and life expectancy (%d)",
			ErrInvalidScenario, s.RetirementAge, s.CurrentAge, s.LifeExpectancy)
	}
	if s.AnnualSpending.IsNegative() {
		return fmt.Errorf("%w: annual retirement spending cannot be negative", ErrInvalidScenario)
	}
	if s.CurrentPortfolio.IsNegative() {
		return fmt.Errorf("%w: current portfolio cannot be negative", ErrInvalidScenario)
	}
	if s.VolatilityPct.IsNegative() {
		return fmt.Errorf("%w: volatility cannot be negative", ErrInvalidScenario)
	}
	if s.NumSimulations < 0 {
		return fmt.Errorf("%w: num_simulations cannot be negative", ErrInvalidScenario)
	}
	for i, ev := range s.LifeEvents {
		if ev.StartAge <= 0 {
			return fmt.Errorf("%w: life event %d (%s) needs a positive start age", ErrInvalidScenario, i, ev.Name)
		}
	}
	return nil
}

// TotalYears is the number of simulated year transitions; paths have
// TotalYears+1 balances, index 0 being the current age.
func (s *Scenario) TotalYears() int {
	return s.LifeExpectancy - s.CurrentAge
}

// YearsInRetirement is the retirement span used by the readiness scorer.
func (s *Scenario) YearsInRetirement() int {
	return s.LifeExpectancy - s.RetirementAge
}

// Rate converts a whole-percent field to a fractional rate (7.0 -> 0.07).
func Rate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(decimal.NewFromInt(100))
}

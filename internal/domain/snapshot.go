package domain

import "github.com/shopspring/decimal"

// AccountSnapshot is the household balance picture supplied by the account
// aggregation layer: per-tax-bucket balances plus contribution totals. The
// engine treats it as read-only input.
type AccountSnapshot struct {
	Taxable decimal.Decimal `yaml:"taxable" json:"taxable"`
	PreTax  decimal.Decimal `yaml:"pre_tax" json:"pre_tax"`
	Roth    decimal.Decimal `yaml:"roth" json:"roth"`
	HSA     decimal.Decimal `yaml:"hsa" json:"hsa"`

	AnnualContributions decimal.Decimal `yaml:"annual_contributions" json:"annual_contributions"`
	EmployerMatch       decimal.Decimal `yaml:"employer_match" json:"employer_match"`
	PensionMonthly      decimal.Decimal `yaml:"pension_monthly" json:"pension_monthly"`
}

// TotalPortfolio sums every bucket.
func (a *AccountSnapshot) TotalPortfolio() decimal.Decimal {
	return a.Taxable.Add(a.PreTax).Add(a.Roth).Add(a.HSA)
}

// AnnualAdditions is what flows into the portfolio each accumulation year.
func (a *AccountSnapshot) AnnualAdditions() decimal.Decimal {
	return a.AnnualContributions.Add(a.EmployerMatch)
}

// ApplyTo fills scenario fields the caller left at zero from the snapshot,
// so a scenario can be simulated straight off aggregated account data.
// Explicit scenario values always win.
func (a *AccountSnapshot) ApplyTo(s *Scenario) {
	if s.CurrentPortfolio.IsZero() {
		s.CurrentPortfolio = a.TotalPortfolio()
	}
	if s.AnnualAdditions.IsZero() {
		s.AnnualAdditions = a.AnnualAdditions()
	}
	if s.PensionMonthly.IsZero() {
		s.PensionMonthly = a.PensionMonthly
	}
}

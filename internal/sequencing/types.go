// Package sequencing compares withdrawal orderings across tax buckets on a
// single deterministic path: fixed annual return, inflation-adjusted
// spending, flat tax rates per bucket. It answers "which account do I drain
// first" - the Monte Carlo engine answers "will the money last" - so its
// output is an enrichment merged into a simulation result, never a
// replacement for one.
package sequencing

import (
	"github.com/shopspring/decimal"
)

// TaxTreatment describes how withdrawing from a bucket is taxed.
// Ordinary: taxed as ordinary income (pre-tax accounts).
// CapitalGains: only the gains portion is taxed (taxable brokerage).
// TaxFree: no tax on withdrawal (Roth, qualified HSA).
type TaxTreatment int

const (
	TaxFree TaxTreatment = iota
	OrdinaryIncome
	CapitalGains
)

func (tt TaxTreatment) String() string {
	switch tt {
	case TaxFree:
		return "tax_free"
	case OrdinaryIncome:
		return "ordinary"
	case CapitalGains:
		return "capital_gains"
	default:
		return "unknown"
	}
}

// Bucket names used in withdrawal orders.
const (
	BucketTaxable = "taxable"
	BucketPreTax  = "pre_tax"
	BucketRoth    = "roth"
	BucketHSA     = "hsa"
)

// Input is the numeric contract for one comparison run. Rates are
// fractional (0.22 for 22%). AnnualSpending of zero falls back to
// WithdrawalRate applied to the combined starting balance.
type Input struct {
	Taxable decimal.Decimal `json:"taxable"`
	PreTax  decimal.Decimal `json:"pre_tax"`
	Roth    decimal.Decimal `json:"roth"`
	HSA     decimal.Decimal `json:"hsa"`

	AnnualSpending decimal.Decimal `json:"annual_spending"`
	RetirementAge  int             `json:"retirement_age"`
	LifeExpectancy int             `json:"life_expectancy"`

	AnnualReturn   decimal.Decimal `json:"annual_return"`
	InflationRate  decimal.Decimal `json:"inflation_rate"`
	WithdrawalRate decimal.Decimal `json:"withdrawal_rate"`

	FederalRate      decimal.Decimal `json:"federal_rate"`
	StateRate        decimal.Decimal `json:"state_rate"`
	CapitalGainsRate decimal.Decimal `json:"capital_gains_rate"`

	SSAnnual      decimal.Decimal `json:"ss_annual"`
	PensionAnnual decimal.Decimal `json:"pension_annual"`
}

// StrategyResult is the outcome of one withdrawal ordering.
type StrategyResult struct {
	Name           string          `json:"name"`
	Order          []string        `json:"order"`
	EndingBalance  decimal.Decimal `json:"ending_balance"`
	TotalTaxesPaid decimal.Decimal `json:"total_taxes_paid"`
	YearsLasted    int             `json:"years_lasted"`
	DepletedAtAge  *int            `json:"depleted_at_age,omitempty"`
}

// Comparison holds every strategy outcome plus the recommendation: highest
// ending balance, ties broken by lower lifetime taxes.
type Comparison struct {
	Strategies  []StrategyResult `json:"strategies"`
	Recommended string           `json:"recommended"`
}

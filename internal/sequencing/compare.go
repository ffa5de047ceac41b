package sequencing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// bucket is one tax pool during a strategy walk. Basis approximates the
// untaxed portion of taxable-account withdrawals; only the gains ratio is
// taxed at the capital-gains rate.
type bucket struct {
	name      string
	balance   decimal.Decimal
	basis     decimal.Decimal
	treatment TaxTreatment
}

var one = decimal.NewFromInt(1)

// Compare runs every withdrawal ordering over the same deterministic path
// and ranks them. It validates only what it cannot simulate around; the
// caller treats any error as "no comparison available", never as a failed
// simulation.
func Compare(in Input) (*Comparison, error) {
	if in.LifeExpectancy <= in.RetirementAge {
		return nil, fmt.Errorf("sequencing: life expectancy (%d) must exceed retirement age (%d)", in.LifeExpectancy, in.RetirementAge)
	}
	total := in.Taxable.Add(in.PreTax).Add(in.Roth).Add(in.HSA)
	if !total.IsPositive() {
		return nil, fmt.Errorf("sequencing: no balances to compare")
	}

	spending := in.AnnualSpending
	if !spending.IsPositive() {
		if !in.WithdrawalRate.IsPositive() {
			return nil, fmt.Errorf("sequencing: neither annual spending nor withdrawal rate provided")
		}
		spending = total.Mul(in.WithdrawalRate)
	}

	orders := []struct {
		name         string
		order        []string
		proportional bool
	}{
		{"taxable_first", []string{BucketTaxable, BucketPreTax, BucketRoth, BucketHSA}, false},
		{"pre_tax_first", []string{BucketPreTax, BucketTaxable, BucketRoth, BucketHSA}, false},
		// HSA sits in the tax-free tier with Roth: withdrawals are modeled
		// as qualified medical spending, untaxed like Roth distributions.
		{"roth_first", []string{BucketRoth, BucketHSA, BucketTaxable, BucketPreTax}, false},
		{"proportional", []string{BucketTaxable, BucketPreTax, BucketRoth, BucketHSA}, true},
	}

	cmp := &Comparison{}
	for _, o := range orders {
		cmp.Strategies = append(cmp.Strategies, runStrategy(in, spending, o.name, o.order, o.proportional))
	}

	best := cmp.Strategies[0]
	for _, s := range cmp.Strategies[1:] {
		if s.EndingBalance.GreaterThan(best.EndingBalance) ||
			(s.EndingBalance.Equal(best.EndingBalance) && s.TotalTaxesPaid.LessThan(best.TotalTaxesPaid)) {
			best = s
		}
	}
	cmp.Recommended = best.Name
	return cmp, nil
}

// runStrategy walks retirement year by year draining buckets in order, or
// pro-rata across all buckets when proportional. Withdrawals are grossed up
// so the net amount covers the spending gap after guaranteed income.
func runStrategy(in Input, baseSpending decimal.Decimal, name string, order []string, proportional bool) StrategyResult {
	buckets := map[string]*bucket{
		BucketTaxable: {name: BucketTaxable, balance: in.Taxable, basis: in.Taxable.Mul(decimal.NewFromFloat(0.5)), treatment: CapitalGains},
		BucketPreTax:  {name: BucketPreTax, balance: in.PreTax, treatment: OrdinaryIncome},
		BucketRoth:    {name: BucketRoth, balance: in.Roth, treatment: TaxFree},
		BucketHSA:     {name: BucketHSA, balance: in.HSA, treatment: TaxFree},
	}

	result := StrategyResult{Name: name, Order: order}
	growth := one.Add(in.AnnualReturn)
	inflation := one.Add(in.InflationRate)

	years := in.LifeExpectancy - in.RetirementAge
	guaranteed := in.SSAnnual.Add(in.PensionAnnual)
	spendFactor := one

	for y := 1; y <= years; y++ {
		for _, b := range buckets {
			b.grow(growth)
		}

		need := baseSpending.Mul(spendFactor).Sub(guaranteed.Mul(spendFactor))
		spendFactor = spendFactor.Mul(inflation)
		if !need.IsPositive() {
			result.YearsLasted = y
			continue
		}

		if proportional {
			result.TotalTaxesPaid = result.TotalTaxesPaid.Add(withdrawProportionally(buckets, order, &need, in))
		} else {
			for _, bname := range order {
				if !need.IsPositive() {
					break
				}
				b := buckets[bname]
				tax := b.withdrawNet(&need, in)
				result.TotalTaxesPaid = result.TotalTaxesPaid.Add(tax)
			}
		}

		if need.IsPositive() {
			age := in.RetirementAge + y
			result.DepletedAtAge = &age
			break
		}
		result.YearsLasted = y
	}

	for _, b := range buckets {
		result.EndingBalance = result.EndingBalance.Add(b.balance)
	}
	result.EndingBalance = result.EndingBalance.Round(2)
	result.TotalTaxesPaid = result.TotalTaxesPaid.Round(2)
	return result
}

// withdrawProportionally splits the year's net need across the non-empty
// buckets pro-rata to their balances, grossing each share up through
// withdrawNet. Shares a thin bucket cannot cover fall through to the
// remaining buckets in order.
func withdrawProportionally(buckets map[string]*bucket, order []string, need *decimal.Decimal, in Input) decimal.Decimal {
	total := decimal.Zero
	for _, name := range order {
		total = total.Add(buckets[name].balance)
	}
	if !total.IsPositive() || !need.IsPositive() {
		return decimal.Zero
	}

	taxes := decimal.Zero
	target := *need
	for _, name := range order {
		b := buckets[name]
		if !b.balance.IsPositive() {
			continue
		}
		share := target.Mul(b.balance).Div(total)
		delivered := share
		taxes = taxes.Add(b.withdrawNet(&share, in))
		delivered = delivered.Sub(share)
		*need = need.Sub(delivered)
	}

	for _, name := range order {
		if !need.IsPositive() {
			break
		}
		taxes = taxes.Add(buckets[name].withdrawNet(need, in))
	}
	return taxes
}

func (b *bucket) grow(factor decimal.Decimal) {
	b.balance = b.balance.Mul(factor)
	// Basis does not grow; growth is all gain.
}

// withdrawNet takes as much of the outstanding net need as the bucket can
// cover, grossing up for taxes, and returns the tax paid. need is reduced
// in place by the net amount delivered.
func (b *bucket) withdrawNet(need *decimal.Decimal, in Input) decimal.Decimal {
	if !b.balance.IsPositive() || !need.IsPositive() {
		return decimal.Zero
	}

	rate := b.effectiveTaxRate(in)
	if rate.GreaterThanOrEqual(one) {
		rate = decimal.NewFromFloat(0.99)
	}
	// gross * (1 - rate) = net
	gross := need.Div(one.Sub(rate))
	if gross.GreaterThan(b.balance) {
		gross = b.balance
	}
	tax := gross.Mul(rate)
	net := gross.Sub(tax)

	if b.treatment == CapitalGains && b.balance.IsPositive() {
		// Recover basis proportionally.
		b.basis = b.basis.Mul(one.Sub(gross.Div(b.balance)))
	}
	b.balance = b.balance.Sub(gross)
	*need = need.Sub(net)
	return tax
}

// effectiveTaxRate flattens the bucket's treatment into one rate. Taxable
// withdrawals tax only the unrealized-gain ratio at the capital-gains rate.
func (b *bucket) effectiveTaxRate(in Input) decimal.Decimal {
	switch b.treatment {
	case OrdinaryIncome:
		return in.FederalRate.Add(in.StateRate)
	case CapitalGains:
		if !b.balance.IsPositive() {
			return decimal.Zero
		}
		gains := b.balance.Sub(b.basis)
		if gains.IsNegative() {
			gains = decimal.Zero
		}
		return in.CapitalGainsRate.Mul(gains.Div(b.balance))
	default:
		return decimal.Zero
	}
}

package montecarlo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIncomeContribution(t *testing.T) {
	ss := incomeSource{name: "social_security", monthly: d(2000), startAge: 67}
	one := decimal.NewFromInt(1)

	assert.True(t, ss.contributionAt(66, one).IsZero())
	assert.True(t, d(24000).Equal(ss.contributionAt(67, one)))
	assert.True(t, d(48000).Equal(ss.contributionAt(80, decimal.NewFromInt(2))))
}

func TestTotalIncomeSumsActiveSources(t *testing.T) {
	sources := []incomeSource{
		{name: "social_security", monthly: d(2000), startAge: 67},
		{name: "pension", monthly: d(1000), startAge: 65},
	}
	one := decimal.NewFromInt(1)

	assert.True(t, d(12000).Equal(totalIncomeAt(sources, 65, one)))
	assert.True(t, d(36000).Equal(totalIncomeAt(sources, 70, one)))
}

func TestIncomeBreakdownAt(t *testing.T) {
	sources := []incomeSource{
		{name: "social_security", monthly: d(2000), startAge: 67},
		{name: "spouse_social_security", monthly: d(1500), startAge: 67},
		{name: "pension", monthly: d(500), startAge: 65},
	}

	b := incomeBreakdownAt(sources, 70, decimal.NewFromInt(1))
	assert.True(t, d(24000).Equal(b.SocialSecurity))
	assert.True(t, d(18000).Equal(b.SpouseSocialSecurity))
	assert.True(t, d(6000).Equal(b.Pension))
	assert.True(t, d(48000).Equal(b.Total))
}

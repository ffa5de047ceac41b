package socialsecurity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFullRetirementAge(t *testing.T) {
	assert.Equal(t, 67, FullRetirementAge(1960))
	assert.Equal(t, 67, FullRetirementAge(1980))
	assert.Equal(t, 66, FullRetirementAge(1957))
	assert.Equal(t, 65, FullRetirementAge(1950))
}

func TestEstimatePIABendPoints(t *testing.T) {
	// AIME 1000, entirely in the 90% band.
	pia := EstimatePIA(decimal.NewFromInt(12000))
	assert.True(t, decimal.NewFromInt(900).Equal(pia), "got %s", pia)

	// AIME 5000: 1226*0.90 + (5000-1226)*0.32 = 1103.40 + 1207.68.
	pia = EstimatePIA(decimal.NewFromInt(60000))
	assert.True(t, decimal.NewFromFloat(2311.08).Equal(pia), "got %s", pia)

	// AIME 10000 reaches the 15% band:
	// 1103.40 + (7391-1226)*0.32 + (10000-7391)*0.15 = 1103.40 + 1972.80 + 391.35.
	pia = EstimatePIA(decimal.NewFromInt(120000))
	assert.True(t, decimal.NewFromFloat(3467.55).Equal(pia), "got %s", pia)
}

func TestEstimatePIACapsEarnings(t *testing.T) {
	atCap := EstimatePIA(decimal.NewFromInt(14700 * 12))
	aboveCap := EstimatePIA(decimal.NewFromInt(500000))
	assert.True(t, atCap.Equal(aboveCap))
}

func TestEstimatePIAZeroSalary(t *testing.T) {
	assert.True(t, EstimatePIA(decimal.Zero).IsZero())
}

func TestAdjustForClaimingAge(t *testing.T) {
	pia := decimal.NewFromInt(2000)

	atFRA := AdjustForClaimingAge(pia, 1965, 67)
	assert.True(t, pia.Equal(atFRA))

	// 24 months early: 2000 * (1 - 24 * 5/900) ≈ 1733.33.
	at65 := AdjustForClaimingAge(pia, 1965, 65)
	assert.True(t, at65.LessThan(atFRA))
	assert.True(t, decimal.NewFromFloat(1733.33).Sub(at65).Abs().LessThan(decimal.NewFromFloat(0.05)),
		"got %s", at65)

	// 60 months early: 36 * 5/900 + 24 * 5/1200 = 0.30 reduction.
	at62 := AdjustForClaimingAge(pia, 1965, 62)
	assert.True(t, decimal.NewFromInt(1400).Sub(at62).Abs().LessThan(decimal.NewFromFloat(0.05)),
		"got %s", at62)

	// 36 months delayed: 2000 * 1.24.
	at70 := AdjustForClaimingAge(pia, 1965, 70)
	assert.True(t, decimal.NewFromInt(2480).Sub(at70).Abs().LessThan(decimal.NewFromFloat(0.05)),
		"got %s", at70)

	// Credits stop at 70.
	at72 := AdjustForClaimingAge(pia, 1965, 72)
	assert.True(t, at70.Equal(at72))

	// No benefit before the earliest claiming age.
	assert.True(t, AdjustForClaimingAge(pia, 1965, 60).IsZero())
}

func TestEstimateBenefit(t *testing.T) {
	b := EstimateBenefit(decimal.NewFromInt(90000), 50, 1975, 67, nil)
	assert.True(t, b.EstimatedPIA.IsPositive())
	assert.True(t, b.Monthly.Equal(b.EstimatedPIA), "claiming at FRA pays the PIA")

	early := EstimateBenefit(decimal.NewFromInt(90000), 50, 1975, 62, nil)
	assert.True(t, early.Monthly.LessThan(b.Monthly))
	assert.True(t, early.EstimatedPIA.Equal(b.EstimatedPIA), "PIA is claiming-age independent")
}

func TestEstimateBenefitPIAOverride(t *testing.T) {
	override := decimal.NewFromInt(3100)
	b := EstimateBenefit(decimal.NewFromInt(90000), 50, 1975, 67, &override)
	assert.True(t, override.Equal(b.EstimatedPIA))
	assert.True(t, override.Equal(b.Monthly))
}

package montecarlo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/healthcare"
)

// stubEstimator returns fixed phase costs so the schedule's override policy
// can be tested without the real cost tables.
type stubEstimator struct {
	pre65    decimal.Decimal
	medicare decimal.Decimal
	ltc      decimal.Decimal
}

func (s stubEstimator) EstimateAnnualCost(age int, _ decimal.Decimal, _ int, _ decimal.Decimal, includeLTC bool) healthcare.CostBreakdown {
	b := healthcare.CostBreakdown{}
	if age < 65 {
		b.Pre65 = s.pre65
	} else {
		b.Medicare = s.medicare
	}
	if includeLTC && age >= 75 {
		b.LongTermCare = s.ltc
	}
	b.Total = b.Pre65.Add(b.Medicare).Add(b.LongTermCare)
	return b
}

func healthcareScenario() *domain.Scenario {
	return &domain.Scenario{
		CurrentAge:     58,
		RetirementAge:  62,
		LifeExpectancy: 90,
	}
}

func TestHealthcareScheduleZeroBeforeRetirement(t *testing.T) {
	scen := healthcareScenario()
	est := stubEstimator{pre65: d(12000), medicare: d(7000), ltc: d(4000)}

	schedule := buildHealthcareSchedule(est, scen)
	require.Len(t, schedule, scen.TotalYears()+1)

	for age := scen.CurrentAge; age < scen.RetirementAge; age++ {
		assert.True(t, schedule[age-scen.CurrentAge].IsZero(), "age %d", age)
	}
	assert.True(t, d(12000).Equal(schedule[scen.RetirementAge-scen.CurrentAge]))
}

func TestHealthcareSchedulePhases(t *testing.T) {
	scen := healthcareScenario()
	est := stubEstimator{pre65: d(12000), medicare: d(7000), ltc: d(4000)}

	schedule := buildHealthcareSchedule(est, scen)

	at := func(age int) decimal.Decimal { return schedule[age-scen.CurrentAge] }
	assert.True(t, d(12000).Equal(at(64)), "pre-Medicare")
	assert.True(t, d(7000).Equal(at(65)), "Medicare")
	assert.True(t, d(11000).Equal(at(80)), "Medicare plus long-term care")
	assert.True(t, d(11000).Equal(at(85)))
}

func TestHealthcareScheduleOverrides(t *testing.T) {
	pre := d(9000)
	med := d(5000)
	ltc := d(20000)

	scen := healthcareScenario()
	scen.HealthcareOverrides = &domain.HealthcareOverrides{
		PreMedicareAnnual:  &pre,
		MedicareAnnual:     &med,
		LongTermCareAnnual: &ltc,
	}
	est := stubEstimator{pre65: d(12000), medicare: d(7000), ltc: d(4000)}

	schedule := buildHealthcareSchedule(est, scen)
	at := func(age int) decimal.Decimal { return schedule[age-scen.CurrentAge] }

	// Below 85 an override replaces the whole phase total.
	assert.True(t, d(9000).Equal(at(63)))
	assert.True(t, d(5000).Equal(at(70)))
	assert.True(t, d(5000).Equal(at(80)), "Medicare override covers 65-84 including the LTC years")

	// From 85 the Medicare and LTC portions override independently.
	assert.True(t, d(25000).Equal(at(85)))
	assert.True(t, d(25000).Equal(at(90)))
}

func TestHealthcareSchedulePartialOverrideAt85(t *testing.T) {
	ltc := d(30000)

	scen := healthcareScenario()
	scen.HealthcareOverrides = &domain.HealthcareOverrides{LongTermCareAnnual: &ltc}
	est := stubEstimator{pre65: d(12000), medicare: d(7000), ltc: d(4000)}

	schedule := buildHealthcareSchedule(est, scen)
	at := func(age int) decimal.Decimal { return schedule[age-scen.CurrentAge] }

	assert.True(t, d(11000).Equal(at(80)), "LTC override does not apply before 85")
	assert.True(t, d(37000).Equal(at(85)), "estimator Medicare plus overridden LTC")
}

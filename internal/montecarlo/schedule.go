package montecarlo

import (
	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/domain"
)

// costEntry is one life-event contribution at a single age, in today's
// dollars. medical selects which inflation series compounds it at
// simulation time. Income changes land here as negative amounts.
type costEntry struct {
	amount  decimal.Decimal
	medical bool
}

// eventSchedule maps each simulated age to its stacked life-event entries.
// It is a fixed-size slice indexed by age-currentAge so the hot loop does no
// map lookups and the age domain is bounded by construction.
type eventSchedule struct {
	currentAge int
	entries    [][]costEntry
}

// buildEventSchedule expands discrete life events into per-age entries.
//
// One-time costs land at exactly start_age. Recurring costs and income
// changes cover [start_age, end_age], clipped to the simulated range; a
// missing or inverted end_age collapses the range to start_age alone.
// The year-0 balance is observed, not simulated, so an entry dated at the
// current age is charged in the first transition year; entries dated
// earlier are in the past and dropped.
func buildEventSchedule(events []domain.LifeEvent, currentAge, lifeExpectancy int) *eventSchedule {
	s := &eventSchedule{
		currentAge: currentAge,
		entries:    make([][]costEntry, lifeExpectancy-currentAge+1),
	}

	for _, ev := range events {
		if !ev.OneTimeCost.IsZero() {
			age := ev.StartAge
			if age == currentAge {
				age = currentAge + 1
			}
			s.add(age, costEntry{amount: ev.OneTimeCost, medical: ev.UseMedicalInflation})
		}

		endAge := ev.StartAge
		if ev.EndAge != nil && *ev.EndAge > ev.StartAge {
			endAge = *ev.EndAge
		}
		from, to := ev.StartAge, endAge
		if from == currentAge && to == currentAge {
			to = currentAge + 1
		}
		if from <= currentAge {
			from = currentAge + 1
		}
		if to > lifeExpectancy {
			to = lifeExpectancy
		}

		for age := from; age <= to; age++ {
			if !ev.AnnualCost.IsZero() {
				s.add(age, costEntry{amount: ev.AnnualCost, medical: ev.UseMedicalInflation})
			}
			if !ev.IncomeChange.IsZero() {
				// Income offsets cost and tracks general inflation no
				// matter how the event's costs are flagged.
				s.add(age, costEntry{amount: ev.IncomeChange.Neg(), medical: false})
			}
		}
	}
	return s
}

func (s *eventSchedule) add(age int, e costEntry) {
	i := age - s.currentAge
	if i < 0 || i >= len(s.entries) {
		return
	}
	s.entries[i] = append(s.entries[i], e)
}

// costAt sums the entries for an age, compounding each by the matching
// inflation factor for the elapsed years.
func (s *eventSchedule) costAt(age int, generalFactor, medicalFactor decimal.Decimal) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	i := age - s.currentAge
	if i < 0 || i >= len(s.entries) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, e := range s.entries[i] {
		if e.medical {
			total = total.Add(e.amount.Mul(medicalFactor))
		} else {
			total = total.Add(e.amount.Mul(generalFactor))
		}
	}
	return total
}

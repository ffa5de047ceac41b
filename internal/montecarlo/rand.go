package montecarlo

import (
	"math/rand"
	"sort"
)

// newTrialRand derives an independent generator for one trial. The golden-
// ratio multiplier scrambles adjacent trial indices so neighboring trials do
// not see correlated streams, while keeping the whole run a pure function of
// the base seed.
func newTrialRand(seed int64, trial int) *rand.Rand {
	const mix uint64 = 0x9E3779B97F4A7C15
	return rand.New(rand.NewSource(seed + int64(uint64(trial+1)*mix)))
}

func medianInt(values []int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

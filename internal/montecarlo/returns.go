package montecarlo

import (
	"math"
	"math/rand"
)

// SampleReturn draws one annual return from Normal(mean, stdDev) using the
// Box-Muller transform. Stateless apart from the supplied rng, so trials can
// carry independent sources and tests can pin a seed.
func SampleReturn(rng *rand.Rand, mean, stdDev float64) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		// log(0) is -Inf; redraw the first uniform away from zero.
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}

package montecarlo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleReturnDistribution(t *testing.T) {
	const (
		n      = 100000
		mean   = 0.07
		stdDev = 0.15
	)
	rng := rand.New(rand.NewSource(12345))

	sum := 0.0
	sumSq := 0.0
	for i := 0; i < n; i++ {
		r := SampleReturn(rng, mean, stdDev)
		sum += r
		sumSq += r * r
	}

	sampleMean := sum / n
	sampleStd := math.Sqrt(sumSq/n - sampleMean*sampleMean)

	assert.InDelta(t, mean, sampleMean, 0.01, "sample mean should be near the distribution mean")
	assert.InDelta(t, stdDev, sampleStd, 0.01, "sample std-dev should be near the distribution std-dev")
}

func TestSampleReturnZeroVolatility(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0.07, SampleReturn(rng, 0.07, 0))
	}
}

func TestSampleReturnVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	first := SampleReturn(rng, 0.05, 0.10)
	varied := false
	for i := 0; i < 50; i++ {
		if SampleReturn(rng, 0.05, 0.10) != first {
			varied = true
			break
		}
	}
	assert.True(t, varied, "non-zero volatility should produce varying draws")
}

package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/montecarlo"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func storedScenario(name string) *domain.Scenario {
	return &domain.Scenario{
		Name:                    name,
		CurrentAge:              50,
		RetirementAge:           65,
		LifeExpectancy:          90,
		AnnualSpending:          decimal.NewFromInt(60000),
		PreRetirementReturnPct:  decimal.NewFromFloat(7.0),
		PostRetirementReturnPct: decimal.NewFromFloat(5.0),
		InflationPct:            decimal.NewFromFloat(3.0),
		CurrentPortfolio:        decimal.NewFromInt(800000),
	}
}

func TestScenarioRoundTrip(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveScenario(storedScenario("baseline"))
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := s.GetScenario(id)
	require.NoError(t, err)
	assert.Equal(t, "baseline", got.Name)
	assert.Equal(t, 65, got.Scenario.RetirementAge)
	assert.True(t, decimal.NewFromInt(800000).Equal(got.Scenario.CurrentPortfolio))
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveScenarioUpsertsByName(t *testing.T) {
	s := openTestStore(t)

	id1, err := s.SaveScenario(storedScenario("baseline"))
	require.NoError(t, err)

	updated := storedScenario("baseline")
	updated.RetirementAge = 62
	id2, err := s.SaveScenario(updated)
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "same name keeps the same row")

	got, err := s.GetScenario(id1)
	require.NoError(t, err)
	assert.Equal(t, 62, got.Scenario.RetirementAge)

	list, err := s.ListScenarios()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListScenarios(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveScenario(storedScenario("first"))
	require.NoError(t, err)
	_, err = s.SaveScenario(storedScenario("second"))
	require.NoError(t, err)

	list, err := s.ListScenarios()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGetScenarioNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetScenario(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteScenario(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveScenario(storedScenario("doomed"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteScenario(id))
	_, err = s.GetScenario(id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteScenario(id), ErrNotFound)
}

func TestFingerprintTracksInputs(t *testing.T) {
	a, err := Fingerprint(storedScenario("baseline"))
	require.NoError(t, err)
	b, err := Fingerprint(storedScenario("baseline"))
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical scenarios share a fingerprint")
	assert.Len(t, a, 64)

	changed := storedScenario("baseline")
	changed.AnnualSpending = decimal.NewFromInt(60001)
	c, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "any input change invalidates the cache")
}

func TestResultCache(t *testing.T) {
	s := openTestStore(t)

	scen := storedScenario("cached")
	id, err := s.SaveScenario(scen)
	require.NoError(t, err)
	fp, err := Fingerprint(scen)
	require.NoError(t, err)

	miss, err := s.CachedResult(id, fp)
	require.NoError(t, err)
	assert.Nil(t, miss, "cold cache misses cleanly")

	result, err := montecarlo.NewEngine().Run(context.Background(), scen, nil, montecarlo.Config{
		Seed:           42,
		NumSimulations: 20,
	})
	require.NoError(t, err)
	require.NoError(t, s.SaveResult(id, fp, result))

	hit, err := s.CachedResult(id, fp)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, result.NumSimulations, hit.NumSimulations)
	assert.Equal(t, result.Seed, hit.Seed)
	assert.True(t, result.SuccessRate.Equal(hit.SuccessRate))
	assert.Len(t, hit.Projections, len(result.Projections))
	assert.True(t, result.Projections[5].P50.Equal(hit.Projections[5].P50))

	// Replacing the cached entry for the same fingerprint is not an error.
	require.NoError(t, s.SaveResult(id, fp, result))

	// Other fingerprints still miss.
	other, err := s.CachedResult(id, "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestDeleteScenarioDropsCachedResults(t *testing.T) {
	s := openTestStore(t)

	scen := storedScenario("cascade")
	id, err := s.SaveScenario(scen)
	require.NoError(t, err)
	fp, err := Fingerprint(scen)
	require.NoError(t, err)

	result, err := montecarlo.NewEngine().Run(context.Background(), scen, nil, montecarlo.Config{
		Seed:           7,
		NumSimulations: 20,
	})
	require.NoError(t, err)
	require.NoError(t, s.SaveResult(id, fp, result))

	require.NoError(t, s.DeleteScenario(id))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM simulations WHERE scenario_id = ?`, id).Scan(&count))
	assert.Equal(t, 0, count, "foreign key cascade clears the cache")
}

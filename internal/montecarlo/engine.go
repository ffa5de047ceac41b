// Package montecarlo projects a household portfolio from the present through
// end of life under random market returns. Each of N independent trials
// walks forward a year at a time - sampled return, contributions or
// spending, healthcare, life events, guaranteed income - and the trials
// collapse into per-age percentile bands, a depletion curve, and a composite
// readiness score.
package montecarlo

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/healthcare"
	"github.com/hearthfi/hearth/internal/sequencing"
	"github.com/hearthfi/hearth/internal/socialsecurity"
)

// Trial-count defaults. Full runs are persisted; quick runs back the
// interactive what-if sliders and trade precision for latency.
const (
	DefaultFullSimulations  = 1000
	DefaultQuickSimulations = 500

	defaultClaimingAge = 67
)

// Mode selects the cost model.
type Mode int

const (
	// ModeFull simulates everything: life events, healthcare, pension,
	// Social Security.
	ModeFull Mode = iota
	// ModeQuick drops life events, healthcare, and pension, keeping only
	// spending and Social Security.
	ModeQuick
)

// WithdrawalSettings enables the withdrawal-order comparison on a full run.
// Rates are fractional.
type WithdrawalSettings struct {
	WithdrawalRate   decimal.Decimal
	FederalRate      decimal.Decimal
	StateRate        decimal.Decimal
	CapitalGainsRate decimal.Decimal
}

// Config controls one engine invocation.
type Config struct {
	Mode           Mode
	NumSimulations int   // 0 means the mode default
	Seed           int64 // 0 means time-derived

	// Withdrawal, with a snapshot carrying bucket balances, triggers the
	// withdrawal-order comparison.
	Withdrawal *WithdrawalSettings
}

// Result is the complete output of one simulation run. It is immutable once
// produced; callers cache it keyed on a scenario fingerprint, which the
// fixed-seed determinism of Run makes meaningful.
type Result struct {
	ScenarioName   string `json:"scenario_name"`
	NumSimulations int    `json:"num_simulations"`
	Seed           int64  `json:"seed"`

	Projections []ProjectionPoint `json:"projections"`

	SuccessRate    decimal.Decimal `json:"success_rate"`
	ReadinessScore int             `json:"readiness_score"`

	MedianPortfolioAtRetirement decimal.Decimal  `json:"median_portfolio_at_retirement"`
	MedianPortfolioAtEnd        decimal.Decimal  `json:"median_portfolio_at_end"`
	MedianDepletionAge          *int             `json:"median_depletion_age,omitempty"`
	EstimatedPIA                *decimal.Decimal `json:"estimated_pia,omitempty"`

	WithdrawalComparison *sequencing.Comparison `json:"withdrawal_comparison,omitempty"`
}

// Engine runs Monte Carlo projections. Zero-value collaborators are filled
// by NewEngine; the engine itself holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	Healthcare HealthcareEstimator
	Logger     Logger
}

// NewEngine creates an engine with the default healthcare estimator and a
// silent logger.
func NewEngine() *Engine {
	return &Engine{
		Healthcare: healthcare.NewEstimator(),
		Logger:     nopLogger{},
	}
}

// Run executes one simulation. The scenario is validated before any work
// starts; an optional snapshot fills unset portfolio fields and supplies
// bucket balances for the withdrawal comparison. For a fixed non-zero seed
// the result is bit-identical regardless of how trials are scheduled.
func (e *Engine) Run(ctx context.Context, scen *domain.Scenario, snapshot *domain.AccountSnapshot, cfg Config) (*Result, error) {
	scenario := *scen
	if snapshot != nil {
		snapshot.ApplyTo(&scenario)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quick := cfg.Mode == ModeQuick
	n := cfg.NumSimulations
	if n == 0 {
		n = scenario.NumSimulations
	}
	if n == 0 {
		if quick {
			n = DefaultQuickSimulations
		} else {
			n = DefaultFullSimulations
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var estimatedPIA *decimal.Decimal
	if scenario.SocialSecurityMonthly.IsZero() && scenario.CurrentSalary.IsPositive() {
		claimingAge := scenario.SocialSecurityStartAge
		if claimingAge == 0 {
			claimingAge = defaultClaimingAge
		}
		benefit := socialsecurity.EstimateBenefit(scenario.CurrentSalary, scenario.CurrentAge, scenario.BirthYear, claimingAge, nil)
		scenario.SocialSecurityMonthly = benefit.Monthly
		scenario.SocialSecurityStartAge = claimingAge
		estimatedPIA = &benefit.EstimatedPIA
	}

	in := materialize(&scenario, e.Healthcare, quick)
	e.Logger.Debugf("simulating %q: %d trials over %d years (seed %d)", scenario.Name, n, in.totalYears, seed)

	trials := e.runTrials(n, seed, in)
	projections := aggregate(trials, in)

	result := &Result{
		ScenarioName:   scenario.Name,
		NumSimulations: n,
		Seed:           seed,
		Projections:    projections,
		EstimatedPIA:   estimatedPIA,
	}
	e.summarize(result, trials, &scenario, in)

	if cfg.Withdrawal != nil && snapshot != nil && !quick {
		// Enrichment only: a comparator failure never fails the run.
		cmp, err := sequencing.Compare(sequencing.Input{
			Taxable:          snapshot.Taxable,
			PreTax:           snapshot.PreTax,
			Roth:             snapshot.Roth,
			HSA:              snapshot.HSA,
			AnnualSpending:   scenario.AnnualSpending,
			RetirementAge:    scenario.RetirementAge,
			LifeExpectancy:   scenario.LifeExpectancy,
			AnnualReturn:     domain.Rate(scenario.PostRetirementReturnPct),
			InflationRate:    domain.Rate(scenario.InflationPct),
			WithdrawalRate:   cfg.Withdrawal.WithdrawalRate,
			FederalRate:      cfg.Withdrawal.FederalRate,
			StateRate:        cfg.Withdrawal.StateRate,
			CapitalGainsRate: cfg.Withdrawal.CapitalGainsRate,
			SSAnnual:         scenario.SocialSecurityMonthly.Mul(months),
			PensionAnnual:    scenario.PensionMonthly.Mul(months),
		})
		if err != nil {
			e.Logger.Warnf("withdrawal comparison skipped: %v", err)
		} else {
			result.WithdrawalComparison = cmp
		}
	}

	return result, nil
}

// runTrials executes n independent trials across workers. Each trial owns a
// generator seeded from the base seed and its index, so the path set is a
// pure function of (scenario, seed) and aggregation order never matters.
func (e *Engine) runTrials(n int, seed int64, in *runInputs) []trialResult {
	trials := make([]trialResult, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < n; i += workers {
				trials[i] = runTrial(newTrialRand(seed, i), in)
			}
		}(w)
	}
	wg.Wait()

	return trials
}

// summarize derives the scalar statistics from the trial set.
func (e *Engine) summarize(result *Result, trials []trialResult, scen *domain.Scenario, in *runInputs) {
	n := len(trials)
	finalYear := in.totalYears

	depleted := 0
	var depletionYears []int
	for _, tr := range trials {
		if tr.depletionYear >= 0 && tr.depletionYear <= finalYear {
			depleted++
			depletionYears = append(depletionYears, tr.depletionYear)
		}
	}

	result.SuccessRate = decimal.NewFromInt(int64(n - depleted)).Mul(hundred).
		Div(decimal.NewFromInt(int64(n))).Round(1)

	retirementIndex := scen.RetirementAge - scen.CurrentAge
	result.MedianPortfolioAtRetirement = result.Projections[retirementIndex].P50
	result.MedianPortfolioAtEnd = result.Projections[finalYear].P50

	// Median depletion age is only meaningful when depletion is the typical
	// outcome; below half it stays absent.
	if depleted*2 >= n && depleted > 0 {
		age := scen.CurrentAge + medianInt(depletionYears)
		result.MedianDepletionAge = &age
	}

	result.ReadinessScore = ReadinessScore(
		result.SuccessRate,
		scen.CurrentPortfolio,
		scen.AnnualSpending,
		scen.YearsInRetirement(),
		scen.AnnualAdditions,
		scen.CurrentSalary,
	)
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hearthfi/hearth/internal/api"
	"github.com/hearthfi/hearth/internal/config"
	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/montecarlo"
	"github.com/hearthfi/hearth/internal/output"
	"github.com/hearthfi/hearth/internal/store"
	"github.com/hearthfi/hearth/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliLogger implements montecarlo.Logger using the standard log package.
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var rootCmd = &cobra.Command{
	Use:   "hearth",
	Short: "Household retirement projection engine",
	Long:  "Monte Carlo retirement projections for household portfolios: percentile bands, depletion odds, readiness scoring, and withdrawal-order comparison.",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario-file]",
	Short: "Run a full Monte Carlo projection from a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("scenario")
		scen, err := file.Scenario(name)
		if err != nil {
			return err
		}

		var snapshot *domain.AccountSnapshot
		if file.Household != nil {
			snapshot = file.Household.Snapshot
		}

		engine := montecarlo.NewEngine()
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			engine.Logger = cliLogger{}
		}

		seed, _ := cmd.Flags().GetInt64("seed")
		sims, _ := cmd.Flags().GetInt("simulations")
		cfg := montecarlo.Config{
			Mode:           montecarlo.ModeFull,
			NumSimulations: sims,
			Seed:           seed,
		}

		if compare, _ := cmd.Flags().GetBool("compare-withdrawals"); compare {
			federal, _ := cmd.Flags().GetFloat64("federal-rate")
			state, _ := cmd.Flags().GetFloat64("state-rate")
			gains, _ := cmd.Flags().GetFloat64("capital-gains-rate")
			rate, _ := cmd.Flags().GetFloat64("withdrawal-rate")
			cfg.Withdrawal = &montecarlo.WithdrawalSettings{
				WithdrawalRate:   decimal.NewFromFloat(rate),
				FederalRate:      decimal.NewFromFloat(federal),
				StateRate:        decimal.NewFromFloat(state),
				CapitalGainsRate: decimal.NewFromFloat(gains),
			}
		}

		result, err := engine.Run(cmd.Context(), scen, snapshot, cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unknown format %q (supported: %v)", format, output.FormatNames())
		}
		data, err := f.Format(result)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick [scenario-file]",
	Short: "Interactive what-if mode with live quick simulations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scen := defaultScenario()
		if len(args) == 1 {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("scenario")
			picked, err := file.Scenario(name)
			if err != nil {
				return err
			}
			scen = *picked
			if file.Household != nil && file.Household.Snapshot != nil {
				file.Household.Snapshot.ApplyTo(&scen)
			}
		}

		model := tui.New(montecarlo.NewEngine(), scen)
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scenario and simulation REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		addr, _ := cmd.Flags().GetString("addr")

		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		engine := montecarlo.NewEngine()
		engine.Logger = cliLogger{}

		router := api.NewRouter(api.NewHandler(st, engine))
		log.Printf("listening on %s (db %s)", addr, dbPath)
		return http.ListenAndServe(addr, router)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Scenario file %s is valid\n", args[0])
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "hearth %s (commit %s, built %s)\n", version, commit, date)
	},
}

// defaultScenario seeds the what-if screen when no file is given.
func defaultScenario() domain.Scenario {
	return domain.Scenario{
		Name:                    "what-if",
		CurrentAge:              45,
		RetirementAge:           65,
		LifeExpectancy:          92,
		AnnualSpending:          decimal.NewFromInt(70000),
		PreRetirementReturnPct:  decimal.NewFromFloat(7.0),
		PostRetirementReturnPct: decimal.NewFromFloat(5.0),
		VolatilityPct:           decimal.NewFromFloat(12.0),
		InflationPct:            decimal.NewFromFloat(3.0),
		MedicalInflationPct:     decimal.NewFromFloat(4.5),
		CurrentPortfolio:        decimal.NewFromInt(500000),
		AnnualAdditions:         decimal.NewFromInt(25000),
		SocialSecurityMonthly:   decimal.NewFromInt(2200),
		SocialSecurityStartAge:  67,
	}
}

func main() {
	simulateCmd.Flags().String("scenario", "", "scenario name (defaults to the only scenario in the file)")
	simulateCmd.Flags().String("format", "console", "output format (console, json, csv)")
	simulateCmd.Flags().Int64("seed", 0, "random seed (0 = time-derived)")
	simulateCmd.Flags().Int("simulations", 0, "trial count (0 = default)")
	simulateCmd.Flags().Bool("debug", false, "enable debug logging")
	simulateCmd.Flags().Bool("compare-withdrawals", false, "include withdrawal-order comparison")
	simulateCmd.Flags().Float64("withdrawal-rate", 0.04, "fallback withdrawal rate for the comparison")
	simulateCmd.Flags().Float64("federal-rate", 0.22, "federal marginal rate for the comparison")
	simulateCmd.Flags().Float64("state-rate", 0.05, "state marginal rate for the comparison")
	simulateCmd.Flags().Float64("capital-gains-rate", 0.15, "capital gains rate for the comparison")

	quickCmd.Flags().String("scenario", "", "scenario name (defaults to the only scenario in the file)")

	serveCmd.Flags().String("db", "hearth.db", "SQLite database path")
	serveCmd.Flags().String("addr", ":8080", "listen address")

	rootCmd.AddCommand(simulateCmd, quickCmd, serveCmd, validateCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

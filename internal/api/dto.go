package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/montecarlo"
)

// SimulateRequest is the optional body of a full-simulation call.
type SimulateRequest struct {
	Snapshot       *domain.AccountSnapshot `json:"snapshot,omitempty"`
	Withdrawal     *WithdrawalRequest      `json:"withdrawal,omitempty"`
	NumSimulations int                     `json:"num_simulations,omitempty"`
	Force          bool                    `json:"force,omitempty"`
}

// WithdrawalRequest enables the withdrawal-order comparison. Rates are
// fractional.
type WithdrawalRequest struct {
	WithdrawalRate   decimal.Decimal `json:"withdrawal_rate"`
	FederalRate      decimal.Decimal `json:"federal_rate"`
	StateRate        decimal.Decimal `json:"state_rate"`
	CapitalGainsRate decimal.Decimal `json:"capital_gains_rate"`
}

func (wr *WithdrawalRequest) settings() *montecarlo.WithdrawalSettings {
	if wr == nil {
		return nil
	}
	return &montecarlo.WithdrawalSettings{
		WithdrawalRate:   wr.WithdrawalRate,
		FederalRate:      wr.FederalRate,
		StateRate:        wr.StateRate,
		CapitalGainsRate: wr.CapitalGainsRate,
	}
}

// QuickSimulateRequest carries an inline scenario for an ephemeral quick run.
type QuickSimulateRequest struct {
	Scenario       domain.Scenario `json:"scenario"`
	NumSimulations int             `json:"num_simulations,omitempty"`
	Seed           int64           `json:"seed,omitempty"`
}

// SimulateResponse wraps a result with cache provenance.
type SimulateResponse struct {
	Result *montecarlo.Result `json:"result"`
	Cached bool               `json:"cached,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

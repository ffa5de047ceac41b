package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hearthfi/hearth/internal/montecarlo"
)

// CSVFormatter exports the projection table, one row per simulated age.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *montecarlo.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"age", "p10", "p25", "p50", "p75", "p90", "depletion_pct"}); err != nil {
		return nil, err
	}
	for _, p := range result.Projections {
		row := []string{
			strconv.Itoa(p.Age),
			p.P10.StringFixed(2),
			p.P25.StringFixed(2),
			p.P50.StringFixed(2),
			p.P75.StringFixed(2),
			p.P90.StringFixed(2),
			p.DepletionPct.StringFixed(1),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

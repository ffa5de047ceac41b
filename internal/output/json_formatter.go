package output

import (
	"encoding/json"

	"github.com/hearthfi/hearth/internal/montecarlo"
)

// JSONFormatter renders the full result as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *montecarlo.Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// Package output renders simulation results for the CLI: a human-readable
// console report, JSON for piping, and CSV projection export.
package output

import "github.com/hearthfi/hearth/internal/montecarlo"

// Formatter renders one simulation result.
type Formatter interface {
	Name() string
	Format(result *montecarlo.Result) ([]byte, error)
}

// GetFormatterByName returns the formatter for a format name, or nil.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	default:
		return nil
	}
}

// FormatNames lists the supported format names.
func FormatNames() []string {
	return []string{"console", "json", "csv"}
}

// Package report renders completed screening runs for humans:
// markdown for terminals and chat, CSV for spreadsheets, XLSX for the
// people who ask for XLSX.
package report

import (
	"fmt"
	"sort"

	"github.com/wonny/screener/internal/contracts"
)

// factorColumns returns the factor names present in a run, sorted for
// deterministic column order
func factorColumns(run *contracts.ScreenRun) []string {
	seen := make(map[string]bool)
	for _, res := range run.Results {
		for name := range res.Factors {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatCell renders a nullable factor value
func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}

func formatBool(b bool) string {
	if b {
		return "PASS"
	}
	return "FAIL"
}

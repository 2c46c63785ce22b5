package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wonny/screener/internal/contracts"
)

// WriteCSV writes the full result table: identity, every factor
// column, composite score and pass flag
func WriteCSV(w io.Writer, run *contracts.ScreenRun) error {
	cw := csv.NewWriter(w)
	factors := factorColumns(run)

	header := append([]string{"rank", "ticker", "name"}, factors...)
	header = append(header, "composite_score", "passed_filters")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, res := range run.Results {
		row := []string{strconv.Itoa(res.Rank), res.Ticker, res.Name}
		for _, name := range factors {
			row = append(row, formatCell(res.Factors[name]))
		}
		row = append(row,
			strconv.FormatFloat(res.CompositeScore, 'f', 6, 64),
			strconv.FormatBool(res.PassedFilters))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

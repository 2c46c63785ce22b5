package report

import (
	"fmt"
	"strings"

	"github.com/wonny/screener/internal/contracts"
)

// RenderMarkdown renders a run as a markdown report: run header,
// per-metric pass rates, then the ranked result table
func RenderMarkdown(run *contracts.ScreenRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Screening Report — %s\n\n", run.Strategy)
	if run.Market != "" {
		fmt.Fprintf(&b, "- Market: %s\n", run.Market)
	}
	fmt.Fprintf(&b, "- Universe: %d tickers (%d degraded to null)\n", len(run.Tickers), run.NullCount)
	fmt.Fprintf(&b, "- Passed: %d\n", len(run.PassedTickers()))
	fmt.Fprintf(&b, "- Run: %s → %s\n\n",
		run.StartedAt.Format("2006-01-02 15:04:05"),
		run.FinishedAt.Format("2006-01-02 15:04:05"))

	if run.Summary != nil && len(run.Summary.Metrics) > 0 {
		b.WriteString("## Constraint pass rates\n\n")
		b.WriteString("| Metric | Passed | Rate |\n|---|---:|---:|\n")
		for _, m := range run.Summary.Metrics {
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", m.Metric, m.Passed, m.PassRate*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Results\n\n")
	b.WriteString("| Rank | Ticker | Name | Score | Filters |\n|---:|---|---|---:|---|\n")
	for _, res := range run.Results {
		fmt.Fprintf(&b, "| %d | %s | %s | %.4f | %s |\n",
			res.Rank, res.Ticker, res.Name, res.CompositeScore, formatBool(res.PassedFilters))
	}

	return b.String()
}

package contracts

import "time"

// CompositeResult is the per-ticker output of one screening run
// ⭐ SSOT: 스코어링/스크리닝 → 리포팅 단계 데이터 전달
type CompositeResult struct {
	Ticker  string              `json:"ticker"`
	Name    string              `json:"name,omitempty"`
	Factors map[string]*float64 `json:"factors"`

	// Row is the source row in the factor table. It survives the rank
	// sort so per-row data (filter flags) can be joined afterwards even
	// when a ticker appears more than once.
	Row int `json:"-"`

	// Batch-relative ranking score, clipped to ±3σ of the run.
	// Only comparable within a single run's universe.
	CompositeScore float64 `json:"composite_score"`
	Rank           int     `json:"rank"` // 1-based, by composite score

	PassedFilters bool            `json:"passed_filters"`
	Breakdown     map[string]bool `json:"breakdown,omitempty"` // per-metric pass/fail
}

// MetricSummary reports how many rows pass a single metric's own
// predicate in isolation. Useful for diagnosing the binding constraint.
type MetricSummary struct {
	Metric   string  `json:"metric"`
	Passed   int     `json:"passed"`
	PassRate float64 `json:"pass_rate"`
}

// FilterSummary aggregates per-metric pass rates for one strategy run
type FilterSummary struct {
	Strategy  string          `json:"strategy"`
	TotalRows int             `json:"total_rows"`
	PassedAll int             `json:"passed_all"`
	Metrics   []MetricSummary `json:"metrics"`
}

// ScreenRun is the full output of one screening run
type ScreenRun struct {
	Strategy   string            `json:"strategy"`
	Market     string            `json:"market,omitempty"`
	Tickers    []string          `json:"tickers"`
	Results    []CompositeResult `json:"results"`
	Summary    *FilterSummary    `json:"summary,omitempty"`
	NullCount  int               `json:"null_count"` // tickers degraded to null records
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// PassedTickers returns the tickers that passed all filters, in rank order
func (r *ScreenRun) PassedTickers() []string {
	passed := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.PassedFilters {
			passed = append(passed, res.Ticker)
		}
	}
	return passed
}

// ProgressEvent describes one completed ticker fetch inside a run
type ProgressEvent struct {
	Ticker    string        `json:"ticker"`
	Index     int           `json:"index"` // position in the input order
	Total     int           `json:"total"`
	Resolved  bool          `json:"resolved"` // false = degraded to null record
	Attempts  int           `json:"attempts"`
	Elapsed   time.Duration `json:"elapsed"`
	Timestamp time.Time     `json:"timestamp"`
}

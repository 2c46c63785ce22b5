package contracts

import "context"

// DataProvider fetches best-effort raw fundamentals for one ticker.
// Implementations are unreliable primitives: they may fail or return
// partially-populated records. All retry/timeout/fallback logic lives
// in the ingestion engine, not here.
type DataProvider interface {
	// Name identifies the data source ("yahoo", "naver", ...)
	Name() string

	// FetchRecord retrieves fundamentals for a single ticker.
	// Fields the source cannot resolve are left nil.
	FetchRecord(ctx context.Context, ticker string) (*FinancialRecord, error)
}

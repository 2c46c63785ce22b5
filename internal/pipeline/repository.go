package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/screener/internal/contracts"
)

// Repository persists completed screening runs. The pipeline works
// without one; persistence is opt-in.
// ⭐ SSOT: 스크리닝 실행 이력 저장/조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a run repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the run tables if they do not exist yet
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS screen_runs (
			id            BIGSERIAL PRIMARY KEY,
			strategy      TEXT NOT NULL,
			market        TEXT NOT NULL DEFAULT '',
			total_tickers INT NOT NULL,
			passed        INT NOT NULL,
			null_count    INT NOT NULL,
			started_at    TIMESTAMPTZ NOT NULL,
			finished_at   TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS screen_results (
			id              BIGSERIAL PRIMARY KEY,
			run_id          BIGINT NOT NULL REFERENCES screen_runs(id) ON DELETE CASCADE,
			ticker          TEXT NOT NULL,
			name            TEXT NOT NULL DEFAULT '',
			rank            INT NOT NULL,
			composite_score DOUBLE PRECISION NOT NULL,
			passed_filters  BOOLEAN NOT NULL,
			factors         JSONB NOT NULL DEFAULT '{}'::jsonb
		);

		CREATE INDEX IF NOT EXISTS idx_screen_results_run_id ON screen_results(run_id);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRun stores a run header and its per-ticker results in one
// transaction, returning the run id
func (r *Repository) SaveRun(ctx context.Context, run *contracts.ScreenRun) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO screen_runs (
			strategy, market, total_tickers, passed, null_count, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		run.Strategy, run.Market, len(run.Tickers), len(run.PassedTickers()),
		run.NullCount, run.StartedAt, run.FinishedAt,
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	for _, res := range run.Results {
		factorsJSON, err := json.Marshal(res.Factors)
		if err != nil {
			return 0, fmt.Errorf("marshal factors for %s: %w", res.Ticker, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO screen_results (
				run_id, ticker, name, rank, composite_score, passed_filters, factors
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			runID, res.Ticker, res.Name, res.Rank,
			res.CompositeScore, res.PassedFilters, factorsJSON,
		)
		if err != nil {
			return 0, fmt.Errorf("insert result for %s: %w", res.Ticker, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// RunHeader is a stored run without its result rows
type RunHeader struct {
	ID           int64     `json:"id"`
	Strategy     string    `json:"strategy"`
	Market       string    `json:"market"`
	TotalTickers int       `json:"total_tickers"`
	Passed       int       `json:"passed"`
	NullCount    int       `json:"null_count"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// RecentRuns lists the most recent run headers, newest first
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]RunHeader, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, strategy, market, total_tickers, passed, null_count, started_at, finished_at
		FROM screen_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var headers []RunHeader
	for rows.Next() {
		var h RunHeader
		if err := rows.Scan(&h.ID, &h.Strategy, &h.Market, &h.TotalTickers,
			&h.Passed, &h.NullCount, &h.StartedAt, &h.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		headers = append(headers, h)
	}
	return headers, rows.Err()
}

// RunResults loads the result rows of one stored run in rank order
func (r *Repository) RunResults(ctx context.Context, runID int64) ([]contracts.CompositeResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ticker, name, rank, composite_score, passed_filters, factors
		FROM screen_results
		WHERE run_id = $1
		ORDER BY rank
	`, runID)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []contracts.CompositeResult
	for rows.Next() {
		var res contracts.CompositeResult
		var factorsJSON []byte
		if err := rows.Scan(&res.Ticker, &res.Name, &res.Rank,
			&res.CompositeScore, &res.PassedFilters, &factorsJSON); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal(factorsJSON, &res.Factors); err != nil {
			return nil, fmt.Errorf("unmarshal factors: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

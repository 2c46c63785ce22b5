// Package ingest fetches financial records for a batch of tickers
// through a bounded worker pool. The engine never fails a batch:
// tickers that cannot be resolved after retries degrade to null
// records, and output order always matches input order.
package ingest

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

const (
	defaultWorkers = 4
	defaultTimeout = 15 * time.Second
)

// Options tunes one engine instance
type Options struct {
	// Workers bounds fetch concurrency. Defaults to 4.
	Workers int

	// MaxRetries is the number of additional attempts after the
	// first failure
	MaxRetries int

	// Timeout bounds the wall-clock time spent on one ticker,
	// retries included. Defaults to 15s.
	Timeout time.Duration

	// RateLimitDelay is the minimum interval between fetch attempts
	// across all workers. Zero disables rate limiting.
	RateLimitDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = defaultWorkers
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	return o
}

// ProgressFunc receives one event per completed ticker. Called from
// worker goroutines; implementations must be safe for concurrent use.
type ProgressFunc func(contracts.ProgressEvent)

// Engine ingests record batches from one provider
// ⭐ SSOT: 티커 목록 → RawRecord 배치 수집 (입력 순서 보존)
type Engine struct {
	provider   contracts.DataProvider
	opts       Options
	limiter    *rate.Limiter
	logger     *logger.Logger
	onProgress ProgressFunc
}

// NewEngine creates an ingestion engine over a provider
func NewEngine(provider contracts.DataProvider, opts Options, log *logger.Logger) *Engine {
	opts = opts.withDefaults()

	var limiter *rate.Limiter
	if opts.RateLimitDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RateLimitDelay), 1)
	}

	return &Engine{
		provider: provider,
		opts:     opts,
		limiter:  limiter,
		logger:   log,
	}
}

// OnProgress installs a per-ticker completion callback
func (e *Engine) OnProgress(fn ProgressFunc) {
	e.onProgress = fn
}

// Fetch ingests one record per ticker, in input order. Each input
// index owns a pre-allocated result slot that only its worker writes,
// so completion order never leaks into output order.
func (e *Engine) Fetch(ctx context.Context, tickers []string) []*contracts.FinancialRecord {
	results := make([]*contracts.FinancialRecord, len(tickers))

	g := new(errgroup.Group)
	g.SetLimit(e.opts.Workers)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			results[i] = e.fetchOne(ctx, ticker, i, len(tickers))
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	nullCount := 0
	for _, rec := range results {
		if rec.IsNull() {
			nullCount++
		}
	}
	e.logger.WithFields(map[string]interface{}{
		"source":  e.provider.Name(),
		"tickers": len(tickers),
		"nulls":   nullCount,
	}).Info("Ingestion batch complete")

	return results
}

// fetchOne resolves a single ticker with timeout and retries,
// degrading to a null record when every attempt fails. The timeout is
// a wall-clock budget for the whole ticker: retries run inside it, so
// a stuck provider can never hold a slot for MaxRetries × Timeout.
func (e *Engine) fetchOne(ctx context.Context, ticker string, index, total int) *contracts.FinancialRecord {
	start := time.Now()

	tickerCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	var rec *contracts.FinancialRecord
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= e.opts.MaxRetries; attempt++ {
		attempts = attempt + 1

		if e.limiter != nil {
			if err := e.limiter.Wait(tickerCtx); err != nil {
				lastErr = err
				break
			}
		}

		fetched, err := e.provider.FetchRecord(tickerCtx, ticker)
		if err == nil && fetched != nil {
			rec = fetched
			break
		}
		lastErr = err

		e.logger.WithFields(map[string]interface{}{
			"ticker":  ticker,
			"attempt": attempts,
			"error":   errString(err),
		}).Warn("Fetch attempt failed")

		if tickerCtx.Err() != nil {
			break
		}
	}

	resolved := rec != nil
	if resolved {
		rec.DeriveEnterpriseValue()
	} else {
		e.logger.WithFields(map[string]interface{}{
			"ticker":   ticker,
			"attempts": attempts,
			"error":    errString(lastErr),
		}).Error("Ticker degraded to null record")
		rec = contracts.NullRecord(ticker)
	}

	if e.onProgress != nil {
		e.onProgress(contracts.ProgressEvent{
			Ticker:    ticker,
			Index:     index,
			Total:     total,
			Resolved:  resolved,
			Attempts:  attempts,
			Elapsed:   time.Since(start),
			Timestamp: time.Now(),
		})
	}

	return rec
}

func errString(err error) string {
	if err == nil {
		return "nil record"
	}
	return err.Error()
}

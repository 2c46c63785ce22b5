// Package pipeline orchestrates one screening run end to end:
// universe listing, ingestion, factor calculation, composite scoring,
// strategy filtering and optional persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/factors"
	"github.com/wonny/screener/internal/ingest"
	"github.com/wonny/screener/internal/scoring"
	"github.com/wonny/screener/internal/screenconfig"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/internal/universe"
	"github.com/wonny/screener/pkg/logger"
)

// ErrUnknownSource is returned for data source names with no
// registered provider
var ErrUnknownSource = errors.New("unknown data source")

const (
	defaultSource = "yahoo"
	defaultMarket = "KOSPI"
	defaultTopN   = 200
)

// Request describes one screening run
type Request struct {
	Strategy string
	Source   string // provider name, defaults to yahoo

	// Explicit tickers override the universe listing
	Tickers []string

	// Market/TopN select the universe when Tickers is empty
	Market string
	TopN   int

	// OnProgress receives per-ticker ingestion events
	OnProgress ingest.ProgressFunc
}

// Runner wires the screening stages together
// ⭐ SSOT: 스크리닝 파이프라인 실행은 여기서만
type Runner struct {
	universe   *universe.Client
	providers  map[string]contracts.DataProvider
	registry   *screening.Registry
	screenCfg  *screenconfig.Config
	ingestOpts ingest.Options
	repo       *Repository // nil = persistence disabled
	logger     *logger.Logger
}

// NewRunner creates a pipeline runner. repo may be nil.
func NewRunner(
	universeClient *universe.Client,
	providers map[string]contracts.DataProvider,
	registry *screening.Registry,
	screenCfg *screenconfig.Config,
	ingestOpts ingest.Options,
	repo *Repository,
	log *logger.Logger,
) *Runner {
	return &Runner{
		universe:   universeClient,
		providers:  providers,
		registry:   registry,
		screenCfg:  screenCfg,
		ingestOpts: ingestOpts,
		repo:       repo,
		logger:     log,
	}
}

// Run executes one screening run. Invalid strategy or source names
// fail fast; provider failures inside the run degrade to null records
// instead.
func (r *Runner) Run(ctx context.Context, req Request) (*contracts.ScreenRun, error) {
	strategy, err := r.registry.Get(req.Strategy)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = defaultSource
	}
	provider, ok := r.providers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	started := time.Now()

	tickers := req.Tickers
	market := req.Market
	names := make(map[string]string)
	if len(tickers) == 0 {
		if market == "" {
			market = defaultMarket
		}
		topN := req.TopN
		if topN <= 0 {
			topN = defaultTopN
		}

		listings, err := r.universe.TopByMarketCap(ctx, market, topN)
		if err != nil {
			return nil, fmt.Errorf("list universe: %w", err)
		}
		tickers = universe.Tickers(listings)
		for _, l := range listings {
			names[l.Ticker] = l.Name
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"strategy": strategy.Name(),
		"source":   source,
		"tickers":  len(tickers),
	}).Info("Screening run started")

	engine := ingest.NewEngine(provider, r.ingestOpts, r.logger)
	if req.OnProgress != nil {
		engine.OnProgress(req.OnProgress)
	}
	records := engine.Fetch(ctx, tickers)

	nullCount := 0
	for _, rec := range records {
		if rec.IsNull() {
			nullCount++
		}
		if rec.Name != "" {
			names[rec.Ticker] = rec.Name
		}
	}

	calc := factors.NewCalculator(r.logger)
	table := calc.Calculate(records)

	scorer := scoring.NewScorer(scoring.WeightsFromConfig(r.screenCfg), r.logger)
	scored := scorer.Score(table)

	passed := strategy.Apply(table, r.screenCfg)

	// Join by table row, not ticker: a duplicated ticker keeps its own
	// pass flag per row
	results := make([]contracts.CompositeResult, len(scored))
	for i, res := range scored {
		res.Name = names[res.Ticker]
		res.PassedFilters = passed[res.Row]
		results[i] = *res
	}

	run := &contracts.ScreenRun{
		Strategy:   strategy.Name(),
		Market:     market,
		Tickers:    tickers,
		Results:    results,
		Summary:    strategy.Summarize(table, r.screenCfg),
		NullCount:  nullCount,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	if r.repo != nil {
		if runID, err := r.repo.SaveRun(ctx, run); err != nil {
			r.logger.WithError(err).Warn("Failed to persist screening run")
		} else {
			r.logger.WithField("run_id", runID).Debug("Screening run persisted")
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"strategy": run.Strategy,
		"passed":   len(run.PassedTickers()),
		"nulls":    run.NullCount,
		"elapsed":  run.FinishedAt.Sub(run.StartedAt),
	}).Info("Screening run finished")

	return run, nil
}

// Strategies exposes the registry for listing endpoints
func (r *Runner) Strategies() *screening.Registry {
	return r.registry
}

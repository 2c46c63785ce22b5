package commands

import (
	"context"
	"fmt"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/external/csvfile"
	"github.com/wonny/screener/internal/external/naver"
	"github.com/wonny/screener/internal/external/yahoo"
	"github.com/wonny/screener/internal/ingest"
	"github.com/wonny/screener/internal/pipeline"
	"github.com/wonny/screener/internal/screenconfig"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/internal/universe"
	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/database"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

// app holds the wired application components shared by the commands
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	runner *pipeline.Runner
	repo   *pipeline.Repository // nil = persistence disabled
	db     *database.DB         // nil = no database
}

// close releases held resources
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// bootstrap loads config and wires the screening pipeline
// ⭐ SSOT: CLI 구성요소 조립은 이 함수에서만
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strategyFile != "" {
		cfg.StrategyFile = strategyFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	screenCfg := screenconfig.Default()
	if cfg.StrategyFile != "" {
		screenCfg, err = screenconfig.Load(cfg.StrategyFile)
		if err != nil {
			return nil, fmt.Errorf("load strategy config: %w", err)
		}
		for _, warning := range screenconfig.Warn(screenCfg) {
			log.WithField("code", warning.Code).Warn(warning.Message)
		}
	}

	httpClient := httputil.New(log)

	providers := map[string]contracts.DataProvider{
		"yahoo": yahoo.NewClient(httpClient, cfg.Yahoo.BaseURL, log),
		"naver": naver.NewClient(httpClient, cfg.Naver.BaseURL, log),
	}
	if csvPath != "" {
		cfg.CSV.Path = csvPath
	}
	if cfg.CSV.Path != "" {
		providers["csv"] = csvfile.NewProvider(cfg.CSV.Path, log)
	}
	universeClient := universe.NewClient(httpClient, cfg.KRX.BaseURL, log)

	a := &app{cfg: cfg, log: log}

	// Persistence is optional; screening runs work without a database
	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		a.repo = pipeline.NewRepository(db.Pool)
		if err := a.repo.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Connected to database")
	}

	a.runner = pipeline.NewRunner(
		universeClient,
		providers,
		screening.NewRegistry(),
		screenCfg,
		ingest.Options{
			Workers:        cfg.Ingest.Workers,
			MaxRetries:     cfg.Ingest.MaxRetries,
			Timeout:        cfg.Ingest.Timeout,
			RateLimitDelay: cfg.Ingest.RateLimitDelay,
		},
		a.repo,
		log,
	)

	return a, nil
}

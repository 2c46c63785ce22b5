package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/ingest"
	"github.com/wonny/screener/internal/pipeline"
	"github.com/wonny/screener/internal/screenconfig"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/logger"
)

type stubProvider struct {
	records map[string]*contracts.FinancialRecord
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchRecord(_ context.Context, ticker string) (*contracts.FinancialRecord, error) {
	rec, ok := p.records[ticker]
	if !ok {
		return nil, errors.New("no data")
	}
	return rec, nil
}

func stubRunner(t *testing.T) *pipeline.Runner {
	t.Helper()

	provider := &stubProvider{records: map[string]*contracts.FinancialRecord{
		"005930.KS": {
			Ticker:              "005930.KS",
			Name:                "삼성전자",
			Price:               contracts.Float(70000),
			MarketCap:           contracts.Float(4000e8),
			EnterpriseValue:     contracts.Float(3500e8),
			EBIT:                contracts.Float(400e8),
			EBITDA:              contracts.Float(550e8),
			GrossProfit:         contracts.Float(1200e8),
			NetIncome:           contracts.Float(320e8),
			PretaxIncome:        contracts.Float(400e8),
			IncomeTaxExpense:    contracts.Float(88e8),
			InterestExpense:     contracts.Float(-20e8),
			TotalDebt:           contracts.Float(800e8),
			CashAndEquivalents:  contracts.Float(400e8),
			TotalEquity:         contracts.Float(2000e8),
			TotalAssets:         contracts.Float(3600e8),
			OperatingCashFlow:   contracts.Float(480e8),
			CapitalExpenditures: contracts.Float(-120e8),
			DataSource:          "stub",
			FetchedAt:           time.Now(),
		},
	}}
	return pipeline.NewRunner(
		nil,
		map[string]contracts.DataProvider{"yahoo": provider},
		screening.NewRegistry(),
		screenconfig.Default(),
		ingest.Options{Workers: 1},
		nil,
		logger.Discard(),
	)
}

func TestScreeningJob_Defaults(t *testing.T) {
	job := NewScreeningJob(nil, "value", "KOSPI", 200, "", "", logger.Discard())

	assert.Equal(t, "daily-screening-value", job.Name())
	assert.Equal(t, defaultScreeningSchedule, job.Schedule())
}

func TestScreeningJob_ScheduleOverride(t *testing.T) {
	job := NewScreeningJob(nil, "value", "KOSPI", 200, "", "0 19 * * 1-5", logger.Discard())
	assert.Equal(t, "0 19 * * 1-5", job.Schedule())
}

func TestScreeningJob_RunWritesReports(t *testing.T) {
	dir := t.TempDir()
	job := NewScreeningJob(stubRunner(t), "value", "", 0, dir, "", logger.Discard())

	// The job itself lists a universe; drive the runner directly to
	// avoid a live KRX call
	run, err := job.runner.Run(context.Background(), pipeline.Request{
		Strategy: "value",
		Tickers:  []string{"005930.KS"},
	})
	require.NoError(t, err)
	require.NoError(t, job.writeReports(run))

	base := "value_" + run.FinishedAt.Format("2006-01-02")
	for _, ext := range []string{".md", ".csv", ".xlsx"} {
		path := filepath.Join(dir, base+ext)
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0))
	}
}

// Package jobs contains the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/pipeline"
	"github.com/wonny/screener/internal/report"
	"github.com/wonny/screener/pkg/logger"
)

// 한국 장마감(15:30) 이후 데이터가 안정되는 저녁에 실행
const defaultScreeningSchedule = "0 18 * * 1-5"

// ScreeningJob runs one full screening pass and writes a dated report
// ⭐ SSOT: 정기 스크리닝 작업은 이 잡에서만
type ScreeningJob struct {
	runner   *pipeline.Runner
	strategy string
	market   string
	topN     int
	outDir   string // "" = no report files
	schedule string
	logger   *logger.Logger
}

// NewScreeningJob creates a daily screening job. outDir may be empty to
// skip report files; schedule may be empty for the default.
func NewScreeningJob(runner *pipeline.Runner, strategy, market string, topN int, outDir, schedule string, log *logger.Logger) *ScreeningJob {
	if schedule == "" {
		schedule = defaultScreeningSchedule
	}
	return &ScreeningJob{
		runner:   runner,
		strategy: strategy,
		market:   market,
		topN:     topN,
		outDir:   outDir,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreeningJob) Name() string {
	return "daily-screening-" + j.strategy
}

// Schedule returns the cron schedule expression
func (j *ScreeningJob) Schedule() string {
	return j.schedule
}

// Run executes one screening pass
func (j *ScreeningJob) Run(ctx context.Context) error {
	run, err := j.runner.Run(ctx, pipeline.Request{
		Strategy: j.strategy,
		Market:   j.market,
		TopN:     j.topN,
	})
	if err != nil {
		return fmt.Errorf("screening run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"strategy": run.Strategy,
		"passed":   len(run.PassedTickers()),
		"nulls":    run.NullCount,
	}).Info("Scheduled screening finished")

	if j.outDir == "" {
		return nil
	}
	return j.writeReports(run)
}

// writeReports writes markdown, CSV and Excel reports under outDir,
// stamped with the run date
func (j *ScreeningJob) writeReports(run *contracts.ScreenRun) error {
	if err := os.MkdirAll(j.outDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	stamp := run.FinishedAt.Format("2006-01-02")
	base := fmt.Sprintf("%s_%s", run.Strategy, stamp)

	mdPath := filepath.Join(j.outDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(report.RenderMarkdown(run)), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}

	csvPath := filepath.Join(j.outDir, base+".csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create csv report: %w", err)
	}
	if err := report.WriteCSV(f, run); err != nil {
		f.Close()
		return fmt.Errorf("write csv report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv report: %w", err)
	}

	xlsxPath := filepath.Join(j.outDir, base+".xlsx")
	if err := report.WriteXLSX(xlsxPath, run); err != nil {
		return fmt.Errorf("write excel report: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"dir":   j.outDir,
		"base":  base,
		"files": 3,
	}).Info("Screening reports written")

	return nil
}

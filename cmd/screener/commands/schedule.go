package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/scheduler"
	"github.com/wonny/screener/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "정기 스크리닝 스케줄러 시작",
	Long: `크론 스케줄에 따라 스크리닝을 반복 실행합니다.

기본 스케줄은 평일 18:00 (장마감 후 데이터 안정 시점)이며,
결과 리포트는 날짜별 파일로 저장됩니다.

Example:
  go run ./cmd/screener scheduler --strategy value --reports ./reports
  go run ./cmd/screener scheduler --strategy buffett --cron "0 19 * * 1-5"
  go run ./cmd/screener scheduler --strategy value --now`,
	RunE: runSchedule,
}

var (
	scheduleStrategy string
	scheduleMarket   string
	scheduleTopN     int
	scheduleReports  string
	scheduleCron     string
	scheduleNow      bool
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleStrategy, "strategy", "value", "screening strategy")
	scheduleCmd.Flags().StringVar(&scheduleMarket, "market", "KOSPI", "universe market (KOSPI|KOSDAQ)")
	scheduleCmd.Flags().IntVar(&scheduleTopN, "top", 200, "universe size by market cap")
	scheduleCmd.Flags().StringVar(&scheduleReports, "reports", "./reports", "report output directory")
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron schedule override")
	scheduleCmd.Flags().BoolVar(&scheduleNow, "now", false, "run the job once immediately on start")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Screener Scheduler ===")

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	job := jobs.NewScreeningJob(a.runner, scheduleStrategy, scheduleMarket, scheduleTopN, scheduleReports, scheduleCron, a.log)

	sched := scheduler.New(a.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if scheduleNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("\n✅ Scheduler running: %s (%s)\n", job.Name(), job.Schedule())
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}

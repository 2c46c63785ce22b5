package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/pipeline"
	"github.com/wonny/screener/internal/report"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "스크리닝 실행",
	Long: `한 번의 스크리닝을 실행합니다.

이 명령어는:
- 유니버스 선정 (KRX 시가총액 상위 N) 또는 지정 티커
- 재무 데이터 병렬 수집 (실패 티커는 null로 유지)
- 팩터 계산 → 종합 점수 → 전략 필터링
- 결과를 콘솔/마크다운/CSV/엑셀로 출력

Example:
  go run ./cmd/screener screen --strategy value
  go run ./cmd/screener screen --strategy buffett --market KOSDAQ --top 100
  go run ./cmd/screener screen --tickers 005930.KS,000660.KS --source yahoo
  go run ./cmd/screener screen --source csv --csv-file fundamentals.csv --tickers 005930.KS
  go run ./cmd/screener screen --strategy value --csv results.csv --xlsx results.xlsx`,
	RunE: runScreen,
}

var (
	screenStrategy string
	screenSource   string
	screenMarket   string
	screenTopN     int
	screenTickers  []string
	screenMarkdown string
	screenCSV      string
	screenXLSX     string
	screenLimit    int
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenStrategy, "strategy", "value", "screening strategy")
	screenCmd.Flags().StringVar(&screenSource, "source", "", "data source (yahoo|naver|csv)")
	screenCmd.Flags().StringVar(&screenMarket, "market", "", "universe market (KOSPI|KOSDAQ)")
	screenCmd.Flags().IntVar(&screenTopN, "top", 0, "universe size by market cap")
	screenCmd.Flags().StringSliceVar(&screenTickers, "tickers", nil, "explicit tickers, skips universe listing")
	screenCmd.Flags().StringVar(&screenMarkdown, "md", "", "markdown report path")
	screenCmd.Flags().StringVar(&screenCSV, "csv", "", "CSV report path")
	screenCmd.Flags().StringVar(&screenXLSX, "xlsx", "", "Excel report path")
	screenCmd.Flags().IntVar(&screenLimit, "limit", 20, "rows to print to the console")
}

func runScreen(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Value Stock Screener ===")

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	run, err := a.runner.Run(context.Background(), pipeline.Request{
		Strategy: screenStrategy,
		Source:   screenSource,
		Market:   screenMarket,
		TopN:     screenTopN,
		Tickers:  screenTickers,
		OnProgress: func(ev contracts.ProgressEvent) {
			mark := "✓"
			if !ev.Resolved {
				mark = "✗"
			}
			fmt.Fprintf(os.Stderr, "\r[%d/%d] %s %s        ", ev.Index+1, ev.Total, mark, ev.Ticker)
		},
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	printRun(run, screenLimit)

	if screenMarkdown != "" {
		if err := os.WriteFile(screenMarkdown, []byte(report.RenderMarkdown(run)), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
		fmt.Printf("📄 Markdown: %s\n", screenMarkdown)
	}
	if screenCSV != "" {
		f, err := os.Create(screenCSV)
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
		fmt.Printf("📄 CSV: %s\n", screenCSV)
	}
	if screenXLSX != "" {
		if err := report.WriteXLSX(screenXLSX, run); err != nil {
			return fmt.Errorf("write excel report: %w", err)
		}
		fmt.Printf("📄 Excel: %s\n", screenXLSX)
	}

	return nil
}

// printRun prints the run summary and the top rows to the console
func printRun(run *contracts.ScreenRun, limit int) {
	fmt.Printf("\n전략: %s | 종목 %d개 | 수집 실패 %d개 | 통과 %d개\n\n",
		run.Strategy, len(run.Results), run.NullCount, len(run.PassedTickers()))

	if run.Summary != nil && len(run.Summary.Metrics) > 0 {
		fmt.Println("지표별 통과율:")
		for _, m := range run.Summary.Metrics {
			fmt.Printf("  %-22s %4d / %d (%.1f%%)\n", m.Metric, m.Passed, run.Summary.TotalRows, m.PassRate*100)
		}
		fmt.Println()
	}

	fmt.Printf("%-4s %-12s %-20s %10s  %s\n", "순위", "티커", "종목명", "점수", "통과")
	fmt.Println(strings.Repeat("-", 60))

	for i, res := range run.Results {
		if limit > 0 && i >= limit {
			fmt.Printf("... %d rows omitted\n", len(run.Results)-limit)
			break
		}
		pass := " "
		if res.PassedFilters {
			pass = "✅"
		}
		fmt.Printf("%-4d %-12s %-20s %10.4f  %s\n", res.Rank, res.Ticker, res.Name, res.CompositeScore, pass)
	}
}

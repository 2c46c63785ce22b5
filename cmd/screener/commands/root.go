package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	csvPath      string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "가치주 스크리너 - 팩터 기반 저평가 종목 발굴",
	Long: `Value Stock Screener CLI

재무 데이터 수집부터 팩터 계산, 종합 점수 산출,
전략별 필터링까지 한 번에 실행합니다.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener screen --strategy value --market KOSPI --top 200
  go run ./cmd/screener screen --tickers 005930.KS,000660.KS
  go run ./cmd/screener strategies
  go run ./cmd/screener serve
  go run ./cmd/screener scheduler --strategy value`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy-file", "", "strategy thresholds/weights YAML (default is built-in)")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv-file", "", "CSV data file enabling --source csv")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

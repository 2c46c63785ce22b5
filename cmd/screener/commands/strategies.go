package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/screening"
)

// strategiesCmd represents the strategies command
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "등록된 전략 목록",
	Long: `등록된 스크리닝 전략과 각 전략이 요구하는 지표를 출력합니다.

Example:
  go run ./cmd/screener strategies`,
	RunE: runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, args []string) error {
	registry := screening.NewRegistry()

	fmt.Println("=== Screening Strategies ===")
	for _, name := range registry.Names() {
		strategy, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", strategy.Name())
		fmt.Printf("  %s\n", strategy.Description())
		fmt.Printf("  지표: %s\n", strings.Join(strategy.RequiredMetrics(), ", "))
	}

	return nil
}

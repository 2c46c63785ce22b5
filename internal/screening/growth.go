package screening

import (
	"github.com/wonny/screener/internal/factors"
	"github.com/wonny/screener/internal/screenconfig"
)

// Growth metrics need multi-period history. Snapshot providers rarely
// report them, in which case their predicates are skipped.
const (
	colRevenueGrowth   = "revenue_growth"
	colNetIncomeGrowth = "net_income_growth"
	colROE             = "roe"
	colPEGRatio        = "peg_ratio"
)

// NewGrowthStrategy builds the growth screen: fast top- and
// bottom-line growth, strong equity returns, growth priced sensibly
// (PEG) and low leverage. Bounds are fixed, not configured.
func NewGrowthStrategy() Strategy {
	return &thresholdStrategy{
		name:        "growth",
		description: "성장주 투자 기준 스크리닝 (매출/순이익 성장률, ROE, PEG 비율, 부채비율)",
		predicates: []predicate{
			{colRevenueGrowth, func(_ *screenconfig.Config, v float64) bool {
				return v >= 0.15
			}},
			{colNetIncomeGrowth, func(_ *screenconfig.Config, v float64) bool {
				return v >= 0.20
			}},
			{colROE, func(_ *screenconfig.Config, v float64) bool {
				return v >= 0.15
			}},
			{colPEGRatio, func(_ *screenconfig.Config, v float64) bool {
				return v < 1.5 && v > 0
			}},
			{factors.ColDebtToEquity, func(_ *screenconfig.Config, v float64) bool {
				return v < 0.5
			}},
		},
	}
}

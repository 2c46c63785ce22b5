package screening

import (
	"github.com/wonny/screener/internal/factors"
	"github.com/wonny/screener/internal/screenconfig"
)

const colRevenueVolatility = "revenue_volatility"

// NewQualityStrategy builds the quality screen: highly productive
// capital, comfortable solvency, strong cash yield and stable
// revenue. Bounds are fixed, not configured.
func NewQualityStrategy() Strategy {
	return &thresholdStrategy{
		name:        "quality",
		description: "품질주 투자 기준 스크리닝 (ROIC, ROE, 이자보상배수, 순부채/EBITDA, FCF 수익률, 매출 안정성)",
		predicates: []predicate{
			{factors.ColROIC, func(_ *screenconfig.Config, v float64) bool {
				return v >= 0.15
			}},
			{colROE, func(_ *screenconfig.Config, v float64) bool {
				return v >= 0.15
			}},
			{factors.ColInterestCoverage, func(_ *screenconfig.Config, v float64) bool {
				return v >= 5.0
			}},
			{factors.ColNetDebtEBITDA, func(_ *screenconfig.Config, v float64) bool {
				return v < 1.5
			}},
			{factors.ColFCFYield, func(_ *screenconfig.Config, v float64) bool {
				return v >= 0.08
			}},
			{colRevenueVolatility, func(_ *screenconfig.Config, v float64) bool {
				return v < 0.20
			}},
		},
	}
}

package screening

import (
	"github.com/wonny/screener/internal/factors"
	"github.com/wonny/screener/internal/screenconfig"
)

// NewValueStrategy builds the value screen: reasonably priced
// operations (EV/EBIT band), real cash generation, productive capital
// and a solvent balance sheet, all against configured thresholds.
func NewValueStrategy() Strategy {
	return &thresholdStrategy{
		name:        "value",
		description: "밸류 투자 기준 스크리닝 (EV/EBIT, FCF 수익률, ROIC, 이자보상배수, 순부채/EBITDA)",
		predicates: []predicate{
			{factors.ColEVEBIT, func(cfg *screenconfig.Config, v float64) bool {
				return v >= cfg.Thresholds.EVEBITMin && v <= cfg.Thresholds.EVEBITMax
			}},
			{factors.ColFCFYield, func(cfg *screenconfig.Config, v float64) bool {
				return v >= cfg.Thresholds.FCFYieldMin
			}},
			{factors.ColROIC, func(cfg *screenconfig.Config, v float64) bool {
				return v >= cfg.Thresholds.ROICMin
			}},
			{factors.ColInterestCoverage, func(cfg *screenconfig.Config, v float64) bool {
				return v >= cfg.Thresholds.InterestCoverageMin
			}},
			{factors.ColNetDebtEBITDA, func(cfg *screenconfig.Config, v float64) bool {
				return v < cfg.Thresholds.NetDebtToEBITDAMax
			}},
		},
	}
}

package screening

import (
	"github.com/wonny/screener/internal/factors"
	"github.com/wonny/screener/internal/screenconfig"
)

// Buffett hard bounds. Each predicate takes the stricter of the
// hard-coded bound and the configured one: floors use max, caps use
// min.
const (
	buffettEVEBITFloor      = 4.0
	buffettEVEBITCap        = 12.0
	buffettFCFYieldFloor    = 0.07
	buffettROICFloor        = 0.12
	buffettCoverageFloor    = 5.0
	buffettNetDebtEBITDACap = 1.5
)

func stricterFloor(hard, configured float64) float64 {
	if configured > hard {
		return configured
	}
	return hard
}

func stricterCap(hard, configured float64) float64 {
	if configured < hard {
		return configured
	}
	return hard
}

// NewBuffettStrategy builds the buffett-style screen: the value
// conditions combined conservatively with quality and solvency, each
// bound tightened against its hard-coded counterpart.
func NewBuffettStrategy() Strategy {
	return &thresholdStrategy{
		name:        "buffett",
		description: "버핏 스타일 저평가 우량주 (EV/EBIT, FCF 수익률, ROIC, 이자보상배수, 순부채/EBITDA)",
		predicates: []predicate{
			{factors.ColEVEBIT, func(cfg *screenconfig.Config, v float64) bool {
				return v >= stricterFloor(buffettEVEBITFloor, cfg.Thresholds.EVEBITMin) &&
					v <= stricterCap(buffettEVEBITCap, cfg.Thresholds.EVEBITMax)
			}},
			{factors.ColFCFYield, func(cfg *screenconfig.Config, v float64) bool {
				return v >= stricterFloor(buffettFCFYieldFloor, cfg.Thresholds.FCFYieldMin)
			}},
			{factors.ColROIC, func(cfg *screenconfig.Config, v float64) bool {
				return v >= stricterFloor(buffettROICFloor, cfg.Thresholds.ROICMin)
			}},
			{factors.ColInterestCoverage, func(cfg *screenconfig.Config, v float64) bool {
				return v >= stricterFloor(buffettCoverageFloor, cfg.Thresholds.InterestCoverageMin)
			}},
			{factors.ColNetDebtEBITDA, func(cfg *screenconfig.Config, v float64) bool {
				return v < stricterCap(buffettNetDebtEBITDACap, cfg.Thresholds.NetDebtToEBITDAMax)
			}},
		},
	}
}

package screenconfig

// Config는 스크리닝 전략의 전체 설정
// Shared read-only by every strategy and the scorer within one run.
type Config struct {
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
	Weights    Weights    `yaml:"weights" json:"weights"`
}

// Thresholds 팩터별 통과 기준
type Thresholds struct {
	EVEBITMin           float64 `yaml:"ev_ebit_min" json:"ev_ebit_min"`
	EVEBITMax           float64 `yaml:"ev_ebit_max" json:"ev_ebit_max"`
	FCFYieldMin         float64 `yaml:"fcf_yield_min" json:"fcf_yield_min"`
	ROICMin             float64 `yaml:"roic_min" json:"roic_min"`
	InterestCoverageMin float64 `yaml:"interest_coverage_min" json:"interest_coverage_min"`
	NetDebtToEBITDAMax  float64 `yaml:"net_debt_to_ebitda_max" json:"net_debt_to_ebitda_max"`
}

// Weights 그룹별 팩터 가중치 (accounting/investment는 차감)
// Empty maps mean "use the built-in defaults for that group".
type Weights struct {
	Value      map[string]float64 `yaml:"value" json:"value"`
	Quality    map[string]float64 `yaml:"quality" json:"quality"`
	Accounting map[string]float64 `yaml:"accounting" json:"accounting"`
	Investment map[string]float64 `yaml:"investment" json:"investment"`
	Momentum   map[string]float64 `yaml:"momentum" json:"momentum"`
}

// Empty reports whether no group carries any weight override
func (w Weights) Empty() bool {
	return len(w.Value) == 0 && len(w.Quality) == 0 && len(w.Accounting) == 0 &&
		len(w.Investment) == 0 && len(w.Momentum) == 0
}

// Sum returns the combined weight across all groups
func (w Weights) Sum() float64 {
	total := 0.0
	for _, group := range []map[string]float64{w.Value, w.Quality, w.Accounting, w.Investment, w.Momentum} {
		for _, v := range group {
			total += v
		}
	}
	return total
}

// Default returns the stock configuration: EV/EBIT in [5, 12],
// FCF yield ≥ 7%, ROIC ≥ 12%, interest coverage ≥ 4x, net debt ≤ 2x
// EBITDA, and the default 40/30/15/10/5 group weighting.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			EVEBITMin:           5.0,
			EVEBITMax:           12.0,
			FCFYieldMin:         0.07,
			ROICMin:             0.12,
			InterestCoverageMin: 4.0,
			NetDebtToEBITDAMax:  2.0,
		},
		Weights: Weights{
			Value: map[string]float64{
				"earnings_yield": 0.20,
				"fcf_yield":      0.10,
				"book_to_market": 0.10,
			},
			Quality: map[string]float64{
				"gross_profitability": 0.15,
				"roic":                0.10,
				"interest_coverage":   0.05,
			},
			Accounting: map[string]float64{
				"accruals":   0.07,
				"noa_ratio":  0.05,
				"risk_flags": 0.03,
			},
			Investment: map[string]float64{
				"asset_growth": 0.05,
				"net_issuance": 0.05,
			},
			Momentum: map[string]float64{
				"momentum_12m_1m": 0.05,
			},
		},
	}
}

package screenconfig

import (
	"fmt"
	"math"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	t := cfg.Thresholds

	if t.EVEBITMin < 0 {
		return ValidationError{"thresholds.ev_ebit_min", "must be >= 0"}
	}
	if t.EVEBITMax <= t.EVEBITMin {
		return ValidationError{"thresholds.ev_ebit_max", "must be > ev_ebit_min"}
	}
	if t.FCFYieldMin < 0 || t.FCFYieldMin > 1 {
		return ValidationError{"thresholds.fcf_yield_min", "must be in range [0, 1]"}
	}
	if t.ROICMin < 0 || t.ROICMin > 1 {
		return ValidationError{"thresholds.roic_min", "must be in range [0, 1]"}
	}
	if t.InterestCoverageMin < 0 {
		return ValidationError{"thresholds.interest_coverage_min", "must be >= 0"}
	}
	if t.NetDebtToEBITDAMax <= 0 {
		return ValidationError{"thresholds.net_debt_to_ebitda_max", "must be > 0"}
	}

	for _, group := range []struct {
		name    string
		weights map[string]float64
	}{
		{"weights.value", cfg.Weights.Value},
		{"weights.quality", cfg.Weights.Quality},
		{"weights.accounting", cfg.Weights.Accounting},
		{"weights.investment", cfg.Weights.Investment},
		{"weights.momentum", cfg.Weights.Momentum},
	} {
		for factor, w := range group.weights {
			if w < 0 || w > 1 {
				return ValidationError{
					Field:   fmt.Sprintf("%s.%s", group.name, factor),
					Message: "must be in range [0, 1]",
				}
			}
		}
	}

	if !cfg.Weights.Empty() {
		if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > 1e-6 {
			return ValidationError{"weights", fmt.Sprintf("must sum to 1.0, got %.4f", sum)}
		}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Thresholds.InterestCoverageMin < 2 {
		warnings = append(warnings, Warning{
			Code:    "WEAK_COVERAGE_FLOOR",
			Message: "interest_coverage_min < 2: 부실기업 통과 위험",
		})
	}
	if cfg.Thresholds.NetDebtToEBITDAMax > 3 {
		warnings = append(warnings, Warning{
			Code:    "HIGH_LEVERAGE_CAP",
			Message: "net_debt_to_ebitda_max > 3: 고레버리지 종목 허용",
		})
	}

	return warnings
}

package scoring

import "github.com/wonny/screener/internal/screenconfig"

// WeightsFromConfig flattens the grouped config weights into scorer
// weights. Accounting and investment factors are lower-is-better
// groups and are marked for subtraction. Empty config weights fall
// back to the defaults.
func WeightsFromConfig(cfg *screenconfig.Config) []FactorWeight {
	if cfg == nil || cfg.Weights.Empty() {
		return DefaultWeights()
	}

	var out []FactorWeight
	appendGroup := func(group map[string]float64, subtract bool) {
		for column, weight := range group {
			out = append(out, FactorWeight{Column: column, Weight: weight, Subtract: subtract})
		}
	}

	appendGroup(cfg.Weights.Value, false)
	appendGroup(cfg.Weights.Quality, false)
	appendGroup(cfg.Weights.Accounting, true)
	appendGroup(cfg.Weights.Investment, true)
	appendGroup(cfg.Weights.Momentum, false)

	return out
}

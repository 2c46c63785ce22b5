// Package scoring ranks a factor table into composite scores. Scores
// are cross-sectional: z-scores are computed against the batch, so a
// ticker's score is only meaningful within one screening run's
// universe.
package scoring

import (
	"sort"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/factors"
	"github.com/wonny/screener/pkg/logger"
)

// compositeClipSigma bounds outlier influence on the final score
const compositeClipSigma = 3.0

// FactorWeight binds one factor column to its share of the composite.
// Subtract marks lower-is-better groups whose contribution is negated.
type FactorWeight struct {
	Column   string
	Weight   float64
	Subtract bool
}

// DefaultWeights returns the stock weighting scheme: value 40%,
// quality 30%, accounting 15% (subtracted), investment 10%
// (subtracted), momentum 5%.
func DefaultWeights() []FactorWeight {
	return []FactorWeight{
		{Column: factors.ColEarningsYield, Weight: 0.20},
		{Column: factors.ColFCFYield, Weight: 0.10},
		{Column: factors.ColBookToMarket, Weight: 0.10},

		{Column: factors.ColGrossProfitability, Weight: 0.15},
		{Column: factors.ColROIC, Weight: 0.10},
		{Column: factors.ColInterestCoverage, Weight: 0.05},

		{Column: factors.ColAccruals, Weight: 0.07, Subtract: true},
		{Column: factors.ColNOARatio, Weight: 0.05, Subtract: true},
		{Column: factors.ColRiskFlags, Weight: 0.03, Subtract: true},

		{Column: factors.ColAssetGrowth, Weight: 0.05, Subtract: true},
		{Column: factors.ColNetIssuance, Weight: 0.05, Subtract: true},

		{Column: factors.ColMomentum12M1M, Weight: 0.05},
	}
}

// Scorer computes composite scores from a factor table
// ⭐ SSOT: 종합 점수 산출 (z-score 정규화 + 그룹 가중치)
type Scorer struct {
	weights []FactorWeight
	logger  *logger.Logger
}

// NewScorer creates a scorer. Nil or empty weights fall back to the
// defaults.
func NewScorer(weights []FactorWeight, log *logger.Logger) *Scorer {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights, logger: log}
}

// normalize z-scores a column against its own batch statistics. A
// column with fewer than two values or zero variance normalizes to 0
// for every row; null cells stay null.
func normalize(col contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(col))

	mean, ok := col.Mean()
	std, stdOK := col.Std()
	if !ok || !stdOK || std == 0 {
		zero := 0.0
		for i := range out {
			z := zero
			out[i] = &z
		}
		return out
	}

	for i, v := range col {
		if v == nil {
			continue
		}
		z := (*v - mean) / std
		out[i] = &z
	}
	return out
}

// Score produces one ranked CompositeResult per table row, in rank
// order (best first). Null normalized values are excluded from the
// weighted sum; a row with no applicable factors scores 0.
func (s *Scorer) Score(table *contracts.FactorTable) []*contracts.CompositeResult {
	n := table.Len()
	scores := make([]float64, n)

	applied := 0
	for _, fw := range s.weights {
		col, ok := table.Column(fw.Column)
		if !ok {
			continue
		}
		applied++

		weight := fw.Weight
		if fw.Subtract {
			weight = -weight
		}

		norm := normalize(col)
		for i, z := range norm {
			if z == nil {
				continue
			}
			scores[i] += weight * *z
		}
	}

	clipScores(scores)

	results := make([]*contracts.CompositeResult, n)
	for i := 0; i < n; i++ {
		results[i] = &contracts.CompositeResult{
			Ticker:         table.Tickers[i],
			Row:            i,
			Factors:        table.Row(i),
			CompositeScore: scores[i],
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].CompositeScore > results[b].CompositeScore
	})
	for rank, r := range results {
		r.Rank = rank + 1
	}

	s.logger.WithFields(map[string]interface{}{
		"rows":            n,
		"applied_weights": applied,
	}).Info("Composite scores calculated")

	return results
}

// clipScores bounds every score to ±3σ of the batch. No clipping when
// the batch is degenerate (σ = 0 or fewer than two rows).
func clipScores(scores []float64) {
	col := contracts.NewColumn(len(scores))
	for i := range scores {
		col[i] = &scores[i]
	}

	std, ok := col.Std()
	if !ok || std == 0 {
		return
	}

	bound := compositeClipSigma * std
	for i, v := range scores {
		if v > bound {
			scores[i] = bound
		} else if v < -bound {
			scores[i] = -bound
		}
	}
}

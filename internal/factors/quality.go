package factors

import (
	"math"

	"github.com/wonny/screener/internal/contracts"
)

const (
	// Fallback effective tax rate when it cannot be estimated
	defaultTaxRate = 0.25

	// Estimated tax rate is clipped to [0, maxTaxRate]
	maxTaxRate = 0.45
)

// GrossProfitability computes Gross Profit / Total Assets (higher is better)
func GrossProfitability(grossProfit, totalAssets contracts.Column) contracts.Column {
	return ratio(grossProfit, totalAssets)
}

// InterestCoverage computes EBIT / |Interest Expense| (higher is better).
// Sources disagree on the sign of interest expense, so the absolute
// value is used as the denominator.
func InterestCoverage(ebit, interestExpense contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(ebit))
	for i := range ebit {
		if ebit[i] == nil || i >= len(interestExpense) || interestExpense[i] == nil {
			continue
		}
		ie := math.Abs(*interestExpense[i])
		if ie == 0 {
			continue
		}
		v := *ebit[i] / ie
		out[i] = &v
	}
	return out
}

// NetDebtEBITDA computes (Total Debt - Cash) / EBITDA (lower is better)
func NetDebtEBITDA(totalDebt, cash, ebitda contracts.Column) contracts.Column {
	netDebt := sub(totalDebt, cash)
	return ratio(netDebt, ebitda)
}

// ROIC approximates return on invested capital (higher is better):
//
//	NOPAT            = EBIT * (1 - effective tax rate)
//	invested capital = total debt + total equity - cash
//
// The result is null when invested capital is non-positive.
func ROIC(ebit, taxExpense, pretaxIncome, totalDebt, totalEquity, cash contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(ebit))
	for i := range ebit {
		if ebit[i] == nil ||
			i >= len(totalDebt) || totalDebt[i] == nil ||
			i >= len(totalEquity) || totalEquity[i] == nil ||
			i >= len(cash) || cash[i] == nil {
			continue
		}

		taxRate := estimateTaxRate(cell(taxExpense, i), cell(pretaxIncome, i))
		nopat := *ebit[i] * (1 - taxRate)

		investedCapital := *totalDebt[i] + *totalEquity[i] - *cash[i]
		if investedCapital <= 0 {
			continue
		}

		v := nopat / investedCapital
		out[i] = &v
	}
	return out
}

// estimateTaxRate derives an effective tax rate from tax expense over
// pretax income, clipped to [0, 0.45]. Falls back to the default rate
// when pretax income is null or zero, or the ratio is non-finite.
func estimateTaxRate(taxExpense, pretaxIncome *float64) float64 {
	if taxExpense == nil || pretaxIncome == nil || *pretaxIncome == 0 {
		return defaultTaxRate
	}

	rate := *taxExpense / *pretaxIncome
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return defaultTaxRate
	}
	if rate < 0 {
		return 0
	}
	if rate > maxTaxRate {
		return maxTaxRate
	}
	return rate
}

// cell safely indexes a column that may be shorter than the batch
func cell(col contracts.Column, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

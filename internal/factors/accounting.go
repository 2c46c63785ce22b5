package factors

import "github.com/wonny/screener/internal/contracts"

const (
	// Interest coverage below this level raises a risk flag
	riskFlagCoverageFloor = 2.5

	// Debt-to-equity above this level raises a risk flag
	riskFlagLeverageCeiling = 1.0
)

// Accruals computes (Net Income - OCF) / Total Assets (lower is better).
// High accruals relative to cash flow suggest aggressive revenue
// recognition.
func Accruals(netIncome, operatingCashFlow, totalAssets contracts.Column) contracts.Column {
	accrued := sub(netIncome, operatingCashFlow)
	return ratio(accrued, totalAssets)
}

// NOARatio computes (Total Assets - Cash) / Total Assets (lower is better)
func NOARatio(totalAssets, cash contracts.Column) contracts.Column {
	noa := sub(totalAssets, cash)
	return ratio(noa, totalAssets)
}

// DebtToEquity computes Total Debt / Total Equity (lower is better)
func DebtToEquity(totalDebt, totalEquity contracts.Column) contracts.Column {
	return ratio(totalDebt, totalEquity)
}

// RiskFlags counts balance-sheet warning signs per row (lower is
// better). A null input simply contributes no flag; the output is
// never null so a data gap is not mistaken for a clean bill of health
// being unknown.
func RiskFlags(interestCoverage, debtToEquity contracts.Column) contracts.Column {
	n := len(interestCoverage)
	if len(debtToEquity) > n {
		n = len(debtToEquity)
	}

	out := contracts.NewColumn(n)
	for i := 0; i < n; i++ {
		flags := 0.0
		if v := cell(interestCoverage, i); v != nil && *v < riskFlagCoverageFloor {
			flags++
		}
		if v := cell(debtToEquity, i); v != nil && *v > riskFlagLeverageCeiling {
			flags++
		}
		f := flags
		out[i] = &f
	}
	return out
}

// Package factors implements pure, null-safe ratio formulas over
// columns of optional values. Every function follows one policy: if a
// required input is null, or a designated denominator is zero (or
// non-positive where that invalidates the ratio), the result is null.
// Formulas never return infinity and never panic on bad input.
package factors

import (
	"github.com/wonny/screener/internal/contracts"
)

// Factor column names shared by the calculator, scorer and strategies
const (
	ColEarningsYield      = "earnings_yield"
	ColFCFYield           = "fcf_yield"
	ColBookToMarket       = "book_to_market"
	ColGrossProfitability = "gross_profitability"
	ColROIC               = "roic"
	ColInterestCoverage   = "interest_coverage"
	ColEVEBIT             = "ev_ebit"
	ColNetDebtEBITDA      = "net_debt_ebitda"
	ColAccruals           = "accruals"
	ColNOARatio           = "noa_ratio"
	ColDebtToEquity       = "debt_to_equity"
	ColRiskFlags          = "risk_flags"
	ColAssetGrowth        = "asset_growth"
	ColNetIssuance        = "net_issuance"
	ColCapexIntensity     = "capex_intensity"
	ColMomentum12M1M      = "momentum_12m_1m"
	ColAltmanZ            = "altman_z"
	ColBeneishM           = "beneish_m"
)

// ratio divides num by den elementwise. Null when either side is null
// or the denominator is exactly zero.
func ratio(num, den contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(num))
	for i := range num {
		if num[i] == nil || i >= len(den) || den[i] == nil || *den[i] == 0 {
			continue
		}
		v := *num[i] / *den[i]
		out[i] = &v
	}
	return out
}

// sub subtracts b from a elementwise, null when either side is null
func sub(a, b contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(a))
	for i := range a {
		if a[i] == nil || i >= len(b) || b[i] == nil {
			continue
		}
		v := *a[i] - *b[i]
		out[i] = &v
	}
	return out
}

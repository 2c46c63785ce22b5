package factors

import "github.com/wonny/screener/internal/contracts"

// AssetGrowth computes year-over-year total asset growth (lower is
// better): assets / prior assets - 1. Null when the prior year is
// missing or zero.
func AssetGrowth(totalAssets, priorTotalAssets contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(totalAssets))
	for i := range totalAssets {
		if totalAssets[i] == nil || i >= len(priorTotalAssets) ||
			priorTotalAssets[i] == nil || *priorTotalAssets[i] == 0 {
			continue
		}
		v := *totalAssets[i] / *priorTotalAssets[i] - 1
		out[i] = &v
	}
	return out
}

// NetIssuance computes year-over-year share count growth (lower is
// better): shares / prior shares - 1. Positive means dilution,
// negative means buybacks.
func NetIssuance(sharesOutstanding, priorSharesOutstanding contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(sharesOutstanding))
	for i := range sharesOutstanding {
		if sharesOutstanding[i] == nil || i >= len(priorSharesOutstanding) ||
			priorSharesOutstanding[i] == nil || *priorSharesOutstanding[i] == 0 {
			continue
		}
		v := *sharesOutstanding[i] / *priorSharesOutstanding[i] - 1
		out[i] = &v
	}
	return out
}

// CapexIntensity computes |CapEx| / Total Assets (lower is better).
// CapEx is usually reported negative; magnitude is what matters here.
func CapexIntensity(capitalExpenditures, totalAssets contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(capitalExpenditures))
	for i := range capitalExpenditures {
		if capitalExpenditures[i] == nil || i >= len(totalAssets) ||
			totalAssets[i] == nil || *totalAssets[i] == 0 {
			continue
		}
		capex := *capitalExpenditures[i]
		if capex < 0 {
			capex = -capex
		}
		v := capex / *totalAssets[i]
		out[i] = &v
	}
	return out
}

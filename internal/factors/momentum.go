package factors

import "github.com/wonny/screener/internal/contracts"

// Momentum12M1M computes 12-month price momentum skipping the most
// recent month (higher is better): price 1 month ago / price 12
// months ago - 1. The skip avoids short-term reversal contamination.
func Momentum12M1M(priceOneMonthAgo, priceTwelveMonthsAgo contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(priceOneMonthAgo))
	for i := range priceOneMonthAgo {
		if priceOneMonthAgo[i] == nil || i >= len(priceTwelveMonthsAgo) ||
			priceTwelveMonthsAgo[i] == nil || *priceTwelveMonthsAgo[i] == 0 {
			continue
		}
		v := *priceOneMonthAgo[i] / *priceTwelveMonthsAgo[i] - 1
		out[i] = &v
	}
	return out
}

package factors

import "github.com/wonny/screener/internal/contracts"

// EarningsYield computes EBIT / Enterprise Value (higher is better)
func EarningsYield(ebit, enterpriseValue contracts.Column) contracts.Column {
	return ratio(ebit, enterpriseValue)
}

// FCFYield computes (OCF - CapEx) / Market Cap (higher is better).
// CapEx is usually reported negative, so the subtraction adds magnitude.
func FCFYield(operatingCashFlow, capitalExpenditures, marketCap contracts.Column) contracts.Column {
	fcf := sub(operatingCashFlow, capitalExpenditures)
	return ratio(fcf, marketCap)
}

// BookToMarket computes Total Equity / Market Cap (higher is better)
func BookToMarket(totalEquity, marketCap contracts.Column) contracts.Column {
	return ratio(totalEquity, marketCap)
}

// EVEBIT computes Enterprise Value / EBIT (lower is better)
func EVEBIT(enterpriseValue, ebit contracts.Column) contracts.Column {
	return ratio(enterpriseValue, ebit)
}

package contracts

import "time"

// FinancialRecord holds raw per-ticker fundamentals for one as-of date
// ⭐ SSOT: 수집 단계 → 팩터 단계 데이터 전달
// Any field may be unknown; absence is expressed as nil, never as a
// sentinel number. Records are immutable after creation.
type FinancialRecord struct {
	// Identity
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`

	// Market
	Price             *float64 `json:"price,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	EnterpriseValue   *float64 `json:"enterprise_value,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`

	// Income statement
	EBIT             *float64 `json:"ebit,omitempty"`
	EBITDA           *float64 `json:"ebitda,omitempty"`
	GrossProfit      *float64 `json:"gross_profit,omitempty"`
	NetIncome        *float64 `json:"net_income,omitempty"`
	PretaxIncome     *float64 `json:"pretax_income,omitempty"`
	IncomeTaxExpense *float64 `json:"income_tax_expense,omitempty"`
	InterestExpense  *float64 `json:"interest_expense,omitempty"`

	// Balance sheet
	TotalDebt          *float64 `json:"total_debt,omitempty"`
	CashAndEquivalents *float64 `json:"cash_and_equivalents,omitempty"`
	TotalEquity        *float64 `json:"total_equity,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`

	// Cash flow
	OperatingCashFlow   *float64 `json:"operating_cash_flow,omitempty"`
	CapitalExpenditures *float64 `json:"capital_expenditures,omitempty"`

	// Provenance
	DataSource    string     `json:"data_source,omitempty"`
	ReportingDate *time.Time `json:"reporting_date,omitempty"`
	FetchedAt     time.Time  `json:"fetched_at"`
}

// NullRecord returns a record carrying only identity, used when a
// ticker could not be resolved within its retry/timeout budget.
func NullRecord(ticker string) *FinancialRecord {
	return &FinancialRecord{
		Ticker:    ticker,
		FetchedAt: time.Now(),
	}
}

// IsNull reports whether the record carries no financial data at all
func (r *FinancialRecord) IsNull() bool {
	return r.Price == nil &&
		r.MarketCap == nil &&
		r.EnterpriseValue == nil &&
		r.SharesOutstanding == nil &&
		r.EBIT == nil &&
		r.EBITDA == nil &&
		r.GrossProfit == nil &&
		r.NetIncome == nil &&
		r.PretaxIncome == nil &&
		r.IncomeTaxExpense == nil &&
		r.InterestExpense == nil &&
		r.TotalDebt == nil &&
		r.CashAndEquivalents == nil &&
		r.TotalEquity == nil &&
		r.TotalAssets == nil &&
		r.OperatingCashFlow == nil &&
		r.CapitalExpenditures == nil
}

// DeriveEnterpriseValue fills EnterpriseValue from
// market_cap + total_debt - cash when the source did not report it
// directly and all three inputs are present. Otherwise it is left nil.
func (r *FinancialRecord) DeriveEnterpriseValue() {
	if r.EnterpriseValue != nil {
		return
	}
	if r.MarketCap == nil || r.TotalDebt == nil || r.CashAndEquivalents == nil {
		return
	}
	ev := *r.MarketCap + *r.TotalDebt - *r.CashAndEquivalents
	r.EnterpriseValue = &ev
}

// Float returns a pointer to v. Convenience for building records.
func Float(v float64) *float64 {
	return &v
}

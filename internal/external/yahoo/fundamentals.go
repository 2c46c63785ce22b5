package yahoo

import (
	"context"
	"time"

	"github.com/wonny/screener/internal/contracts"
)

// Name identifies this provider in logs and progress events
func (c *Client) Name() string { return "yahoo" }

// FetchRecord assembles a financial record for one ticker from the
// quoteSummary modules. Fields the API does not carry stay null;
// enterprise value derivation is the ingestion engine's job.
// ⭐ SSOT: Yahoo 재무 데이터 조회는 이 함수에서만
func (c *Client) FetchRecord(ctx context.Context, ticker string) (*contracts.FinancialRecord, error) {
	result, err := c.fetchQuoteSummary(ctx, ticker)
	if err != nil {
		return nil, err
	}

	price := module(result, "price")
	summaryDetail := module(result, "summaryDetail")
	financialData := module(result, "financialData")
	keyStats := module(result, "defaultKeyStatistics")

	income := latestStatement(module(result, "incomeStatementHistory"), "incomeStatementHistory")
	balance := latestStatement(module(result, "balanceSheetHistory"), "balanceSheetStatements")
	cashflow := latestStatement(module(result, "cashflowStatementHistory"), "cashflowStatements")

	rec := &contracts.FinancialRecord{
		Ticker:     ticker,
		Name:       scanString(price, "longName", "shortName", "symbol"),
		DataSource: c.Name(),
		FetchedAt:  time.Now(),
	}

	rec.Price = firstOf(
		scan(financialData, "currentPrice"),
		scan(price, "regularMarketPrice"),
	)
	rec.MarketCap = firstOf(
		scan(price, "marketCap"),
		scan(summaryDetail, "marketCap"),
	)
	rec.EnterpriseValue = scan(keyStats, "enterpriseValue")
	rec.SharesOutstanding = scan(keyStats, "sharesOutstanding")

	rec.EBIT = scan(income, "ebit", "operatingIncome")
	rec.EBITDA = firstOf(
		scan(financialData, "ebitda"),
		scan(income, "ebitda"),
	)
	rec.GrossProfit = scan(income, "grossProfit")
	rec.NetIncome = scan(income, "netIncome")
	rec.PretaxIncome = scan(income, "incomeBeforeTax", "pretaxIncome")
	rec.IncomeTaxExpense = scan(income, "incomeTaxExpense", "taxProvision")
	rec.InterestExpense = scan(income, "interestExpense", "interestExpenseNonOperating")

	rec.TotalDebt = firstOf(
		scan(financialData, "totalDebt"),
		scan(balance, "totalDebt", "shortLongTermDebt"),
		sumOf(scan(balance, "longTermDebt"), scan(balance, "shortLongTermDebt")),
	)
	rec.CashAndEquivalents = scan(balance, "cash", "cashAndCashEquivalents")
	rec.TotalEquity = scan(balance, "totalStockholderEquity", "stockholdersEquity")
	rec.TotalAssets = scan(balance, "totalAssets")

	rec.OperatingCashFlow = scan(cashflow, "totalCashFromOperatingActivities", "operatingCashFlow")
	rec.CapitalExpenditures = scan(cashflow, "capitalExpenditures", "capitalExpenditure")

	if end := scan(income, "endDate"); end != nil {
		reported := time.Unix(int64(*end), 0).UTC()
		rec.ReportingDate = &reported
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"null":   rec.IsNull(),
	}).Debug("Fetched Yahoo fundamentals")

	return rec, nil
}

// firstOf returns the first non-null candidate
func firstOf(candidates ...*float64) *float64 {
	for _, v := range candidates {
		if v != nil {
			return v
		}
	}
	return nil
}

// sumOf adds candidates, null when none resolve. Used for long-term
// plus short-term debt when total debt is not reported.
func sumOf(values ...*float64) *float64 {
	total := 0.0
	found := false
	for _, v := range values {
		if v != nil {
			total += *v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

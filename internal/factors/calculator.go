package factors

import (
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// Calculator turns a batch of raw financial records into a factor
// table. A factor column is emitted only when every raw input it needs
// has at least one value in the batch; individual null cells still
// propagate to null factor cells.
type Calculator struct {
	logger *logger.Logger
}

// NewCalculator creates a factor calculator
func NewCalculator(log *logger.Logger) *Calculator {
	return &Calculator{logger: log}
}

// rawColumns holds the per-field columns extracted from a record batch
type rawColumns struct {
	price        contracts.Column
	marketCap    contracts.Column
	ev           contracts.Column
	shares       contracts.Column
	ebit         contracts.Column
	ebitda       contracts.Column
	grossProfit  contracts.Column
	netIncome    contracts.Column
	pretaxIncome contracts.Column
	taxExpense   contracts.Column
	interestExp  contracts.Column
	totalDebt    contracts.Column
	cash         contracts.Column
	totalEquity  contracts.Column
	totalAssets  contracts.Column
	ocf          contracts.Column
	capex        contracts.Column
}

func extractRaw(records []*contracts.FinancialRecord) rawColumns {
	n := len(records)
	raw := rawColumns{
		price:        contracts.NewColumn(n),
		marketCap:    contracts.NewColumn(n),
		ev:           contracts.NewColumn(n),
		shares:       contracts.NewColumn(n),
		ebit:         contracts.NewColumn(n),
		ebitda:       contracts.NewColumn(n),
		grossProfit:  contracts.NewColumn(n),
		netIncome:    contracts.NewColumn(n),
		pretaxIncome: contracts.NewColumn(n),
		taxExpense:   contracts.NewColumn(n),
		interestExp:  contracts.NewColumn(n),
		totalDebt:    contracts.NewColumn(n),
		cash:         contracts.NewColumn(n),
		totalEquity:  contracts.NewColumn(n),
		totalAssets:  contracts.NewColumn(n),
		ocf:          contracts.NewColumn(n),
		capex:        contracts.NewColumn(n),
	}

	for i, rec := range records {
		if rec == nil {
			continue
		}
		raw.price[i] = rec.Price
		raw.marketCap[i] = rec.MarketCap
		raw.ev[i] = rec.EnterpriseValue
		raw.shares[i] = rec.SharesOutstanding
		raw.ebit[i] = rec.EBIT
		raw.ebitda[i] = rec.EBITDA
		raw.grossProfit[i] = rec.GrossProfit
		raw.netIncome[i] = rec.NetIncome
		raw.pretaxIncome[i] = rec.PretaxIncome
		raw.taxExpense[i] = rec.IncomeTaxExpense
		raw.interestExp[i] = rec.InterestExpense
		raw.totalDebt[i] = rec.TotalDebt
		raw.cash[i] = rec.CashAndEquivalents
		raw.totalEquity[i] = rec.TotalEquity
		raw.totalAssets[i] = rec.TotalAssets
		raw.ocf[i] = rec.OperatingCashFlow
		raw.capex[i] = rec.CapitalExpenditures
	}
	return raw
}

// present reports whether every column carries at least one value
func present(cols ...contracts.Column) bool {
	for _, c := range cols {
		if c.NonNullCount() == 0 {
			return false
		}
	}
	return true
}

// Calculate builds the factor table for a record batch. Record order
// is preserved; table rows align with the input slice.
func (c *Calculator) Calculate(records []*contracts.FinancialRecord) *contracts.FactorTable {
	tickers := make([]string, len(records))
	for i, rec := range records {
		if rec != nil {
			tickers[i] = rec.Ticker
		}
	}

	table := contracts.NewFactorTable(tickers)
	raw := extractRaw(records)

	add := func(name string, col contracts.Column) {
		if err := table.AddColumn(name, col); err != nil {
			c.logger.WithError(err).Errorf("Failed to add factor column %s", name)
		}
	}

	// Value
	if present(raw.ebit, raw.ev) {
		add(ColEarningsYield, EarningsYield(raw.ebit, raw.ev))
		add(ColEVEBIT, EVEBIT(raw.ev, raw.ebit))
	}
	if present(raw.ocf, raw.capex, raw.marketCap) {
		add(ColFCFYield, FCFYield(raw.ocf, raw.capex, raw.marketCap))
	}
	if present(raw.totalEquity, raw.marketCap) {
		add(ColBookToMarket, BookToMarket(raw.totalEquity, raw.marketCap))
	}

	// Quality
	if present(raw.grossProfit, raw.totalAssets) {
		add(ColGrossProfitability, GrossProfitability(raw.grossProfit, raw.totalAssets))
	}
	if present(raw.ebit, raw.totalDebt, raw.totalEquity, raw.cash) {
		add(ColROIC, ROIC(raw.ebit, raw.taxExpense, raw.pretaxIncome, raw.totalDebt, raw.totalEquity, raw.cash))
	}
	interestCoverage := contracts.Column(nil)
	if present(raw.ebit, raw.interestExp) {
		interestCoverage = InterestCoverage(raw.ebit, raw.interestExp)
		add(ColInterestCoverage, interestCoverage)
	}
	if present(raw.totalDebt, raw.cash, raw.ebitda) {
		add(ColNetDebtEBITDA, NetDebtEBITDA(raw.totalDebt, raw.cash, raw.ebitda))
	}

	// Accounting. Earnings for accruals come from net income when any
	// provider reported it, otherwise EBIT stands in.
	if present(raw.ocf, raw.totalAssets) {
		earnings := raw.netIncome
		if earnings.NonNullCount() == 0 {
			earnings = raw.ebit
		}
		if present(earnings) {
			add(ColAccruals, Accruals(earnings, raw.ocf, raw.totalAssets))
		}
	}
	if present(raw.totalAssets, raw.cash) {
		add(ColNOARatio, NOARatio(raw.totalAssets, raw.cash))
	}
	debtToEquity := contracts.Column(nil)
	if present(raw.totalDebt, raw.totalEquity) {
		debtToEquity = DebtToEquity(raw.totalDebt, raw.totalEquity)
		add(ColDebtToEquity, debtToEquity)
	}
	if interestCoverage != nil || debtToEquity != nil {
		add(ColRiskFlags, RiskFlags(
			orEmpty(interestCoverage, len(records)),
			orEmpty(debtToEquity, len(records)),
		))
	}

	// Capex intensity rides on the same inputs as fcf_yield
	if present(raw.capex, raw.totalAssets) {
		add(ColCapexIntensity, CapexIntensity(raw.capex, raw.totalAssets))
	}

	// Investment and momentum factors need prior-period data that
	// snapshot providers do not report; their columns are simply
	// absent and downstream consumers skip them.

	c.logger.WithFields(map[string]interface{}{
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}).Info("Factor table calculated")

	return table
}

// orEmpty substitutes an all-null column of length n for a nil column
func orEmpty(col contracts.Column, n int) contracts.Column {
	if col == nil {
		return contracts.NewColumn(n)
	}
	return col
}

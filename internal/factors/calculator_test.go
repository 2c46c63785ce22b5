package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

func sampleRecord(ticker string) *contracts.FinancialRecord {
	return &contracts.FinancialRecord{
		Ticker:              ticker,
		Price:               contracts.Float(70000),
		MarketCap:           contracts.Float(1000),
		EnterpriseValue:     contracts.Float(1200),
		EBIT:                contracts.Float(100),
		EBITDA:              contracts.Float(140),
		GrossProfit:         contracts.Float(300),
		NetIncome:           contracts.Float(80),
		PretaxIncome:        contracts.Float(100),
		IncomeTaxExpense:    contracts.Float(22),
		InterestExpense:     contracts.Float(-10),
		TotalDebt:           contracts.Float(400),
		CashAndEquivalents:  contracts.Float(200),
		TotalEquity:         contracts.Float(700),
		TotalAssets:         contracts.Float(1500),
		OperatingCashFlow:   contracts.Float(120),
		CapitalExpenditures: contracts.Float(-30),
	}
}

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator(logger.Discard())

	records := []*contracts.FinancialRecord{
		sampleRecord("005930.KS"),
		contracts.NullRecord("000660.KS"),
	}

	table := calc.Calculate(records)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"005930.KS", "000660.KS"}, table.Tickers)

	for _, name := range []string{
		ColEarningsYield, ColEVEBIT, ColFCFYield, ColBookToMarket,
		ColGrossProfitability, ColROIC, ColInterestCoverage,
		ColNetDebtEBITDA, ColAccruals, ColNOARatio, ColDebtToEquity,
		ColRiskFlags, ColCapexIntensity,
	} {
		assert.True(t, table.Has(name), "expected column %s", name)
	}

	// Momentum and investment factors need history no snapshot carries
	assert.False(t, table.Has(ColMomentum12M1M))
	assert.False(t, table.Has(ColAssetGrowth))
	assert.False(t, table.Has(ColNetIssuance))

	ey := table.Value(ColEarningsYield, 0)
	require.NotNil(t, ey)
	assert.InDelta(t, 100.0/1200.0, *ey, 1e-9)

	// The null record carries null factors, except risk flags which
	// default to zero
	assert.Nil(t, table.Value(ColEarningsYield, 1))
	assert.Nil(t, table.Value(ColROIC, 1))
	flags := table.Value(ColRiskFlags, 1)
	require.NotNil(t, flags)
	assert.Equal(t, 0.0, *flags)
}

func TestCalculator_AccrualsEBITFallback(t *testing.T) {
	calc := NewCalculator(logger.Discard())

	rec := sampleRecord("005930.KS")
	rec.NetIncome = nil

	table := calc.Calculate([]*contracts.FinancialRecord{rec})

	accruals := table.Value(ColAccruals, 0)
	require.NotNil(t, accruals)
	// (EBIT 100 - OCF 120) / assets 1500
	assert.InDelta(t, -20.0/1500.0, *accruals, 1e-9)
}

func TestCalculator_OmitsColumnsWithoutInputs(t *testing.T) {
	calc := NewCalculator(logger.Discard())

	rec := &contracts.FinancialRecord{
		Ticker:    "005930.KS",
		MarketCap: contracts.Float(1000),
		EBIT:      contracts.Float(100),
	}

	table := calc.Calculate([]*contracts.FinancialRecord{rec})

	assert.False(t, table.Has(ColEarningsYield), "no enterprise value in batch")
	assert.False(t, table.Has(ColFCFYield), "no cash flow in batch")
	assert.False(t, table.Has(ColRiskFlags), "no coverage or leverage inputs")
}

package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/pkg/logger"
)

const sampleCSV = `ticker,name,price,shares_outstanding,total_debt,cash_and_equivalents,ebit,total_stockholder_equity,reporting_date
005930.KS,삼성전자,70000,5969782550,100000000,50000000,400000000,2000000000,2023-12-31
000660.KS,SK하이닉스,,,,,250000000,,
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fundamentals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFetchRecord(t *testing.T) {
	p := NewProvider(writeSample(t, sampleCSV), logger.Discard())

	rec, err := p.FetchRecord(context.Background(), "005930.KS")
	require.NoError(t, err)

	assert.Equal(t, "005930.KS", rec.Ticker)
	assert.Equal(t, "삼성전자", rec.Name)
	require.NotNil(t, rec.EBIT)
	assert.Equal(t, 400000000.0, *rec.EBIT)

	// total_stockholder_equity alias maps onto equity
	require.NotNil(t, rec.TotalEquity)
	assert.Equal(t, 2000000000.0, *rec.TotalEquity)

	// market_cap column absent: derived from price × shares
	require.NotNil(t, rec.MarketCap)
	assert.Equal(t, 70000*5969782550.0, *rec.MarketCap)

	require.NotNil(t, rec.ReportingDate)
	assert.Equal(t, 2023, rec.ReportingDate.Year())

	// Columns the file never carries stay null
	assert.Nil(t, rec.OperatingCashFlow)
	assert.Equal(t, "csv", rec.DataSource)
}

func TestFetchRecord_BlankCellsStayNull(t *testing.T) {
	p := NewProvider(writeSample(t, sampleCSV), logger.Discard())

	rec, err := p.FetchRecord(context.Background(), "000660.KS")
	require.NoError(t, err)

	assert.Nil(t, rec.Price)
	assert.Nil(t, rec.MarketCap, "no price or shares, nothing to derive from")
	require.NotNil(t, rec.EBIT)
	assert.Equal(t, 250000000.0, *rec.EBIT)
}

func TestFetchRecord_UnknownTicker(t *testing.T) {
	p := NewProvider(writeSample(t, sampleCSV), logger.Discard())

	_, err := p.FetchRecord(context.Background(), "404040.KS")
	require.Error(t, err)
}

func TestFetchRecord_ReturnsCopies(t *testing.T) {
	p := NewProvider(writeSample(t, sampleCSV), logger.Discard())

	first, err := p.FetchRecord(context.Background(), "005930.KS")
	require.NoError(t, err)
	first.DeriveEnterpriseValue()

	second, err := p.FetchRecord(context.Background(), "005930.KS")
	require.NoError(t, err)
	assert.Nil(t, second.EnterpriseValue, "engine-side mutation must not leak into the cache")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p := NewProvider(filepath.Join(t.TempDir(), "nope.csv"), logger.Discard())
		_, err := p.FetchRecord(context.Background(), "A")
		require.Error(t, err)
	})

	t.Run("no ticker column", func(t *testing.T) {
		p := NewProvider(writeSample(t, "name,price\nfoo,1\n"), logger.Discard())
		_, err := p.FetchRecord(context.Background(), "A")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ticker column")
	})
}

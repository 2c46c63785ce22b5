package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

const sampleQuoteSummary = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "longName": "Samsung Electronics Co., Ltd.",
        "regularMarketPrice": {"raw": 71000, "fmt": "71,000"},
        "marketCap": {"raw": 423000000000000, "fmt": "423T"}
      },
      "summaryDetail": {},
      "financialData": {
        "currentPrice": {"raw": 71200},
        "ebitda": {"raw": 84000000000000},
        "totalDebt": {"raw": 18000000000000}
      },
      "defaultKeyStatistics": {
        "enterpriseValue": {"raw": 350000000000000},
        "sharesOutstanding": {"raw": 5969782550}
      },
      "incomeStatementHistory": {
        "incomeStatementHistory": [{
          "endDate": {"raw": 1703980800},
          "operatingIncome": {"raw": 6500000000000},
          "grossProfit": {"raw": 80000000000000},
          "netIncome": {"raw": 15000000000000},
          "incomeBeforeTax": {"raw": 17000000000000},
          "incomeTaxExpense": {"raw": 2000000000000},
          "interestExpense": {"raw": -900000000000}
        }]
      },
      "balanceSheetHistory": {
        "balanceSheetStatements": [{
          "cash": {"raw": 90000000000000},
          "totalStockholderEquity": {"raw": 350000000000000},
          "totalAssets": {"raw": 450000000000000}
        }]
      },
      "cashflowStatementHistory": {
        "cashflowStatements": [{
          "totalCashFromOperatingActivities": {"raw": 62000000000000},
          "capitalExpenditures": {"raw": -53000000000000}
        }]
      }
    }],
    "error": null
  }
}`

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := httputil.New(logger.Discard()).DisableRetry()
	return NewClient(httpClient, server.URL, logger.Discard()), server
}

func TestFetchRecord(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v10/finance/quoteSummary/005930.KS")
		assert.Contains(t, r.URL.RawQuery, "modules=")
		w.Write([]byte(sampleQuoteSummary))
	})

	rec, err := client.FetchRecord(context.Background(), "005930.KS")
	require.NoError(t, err)

	assert.Equal(t, "005930.KS", rec.Ticker)
	assert.Equal(t, "Samsung Electronics Co., Ltd.", rec.Name)
	assert.Equal(t, "yahoo", rec.DataSource)

	// currentPrice from financialData takes precedence
	require.NotNil(t, rec.Price)
	assert.Equal(t, 71200.0, *rec.Price)

	// ebit is absent; operatingIncome alias resolves it
	require.NotNil(t, rec.EBIT)
	assert.Equal(t, 6.5e12, *rec.EBIT)

	require.NotNil(t, rec.TotalDebt)
	assert.Equal(t, 1.8e13, *rec.TotalDebt)

	require.NotNil(t, rec.CapitalExpenditures)
	assert.Equal(t, -5.3e13, *rec.CapitalExpenditures)

	require.NotNil(t, rec.ReportingDate)
	assert.Equal(t, 2023, rec.ReportingDate.Year())

	assert.False(t, rec.IsNull())
}

func TestFetchRecord_MissingModulesStayNull(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary": {"result": [{"price": {"regularMarketPrice": {"raw": 100}}}], "error": null}}`))
	})

	rec, err := client.FetchRecord(context.Background(), "XXXX.KS")
	require.NoError(t, err)

	require.NotNil(t, rec.Price)
	assert.Nil(t, rec.EBIT)
	assert.Nil(t, rec.TotalAssets)
	assert.Nil(t, rec.ReportingDate)
}

func TestFetchRecord_APIError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary": {"result": [], "error": {"code": "Not Found", "description": "Quote not found"}}}`))
	})

	_, err := client.FetchRecord(context.Background(), "BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quote not found")
}

func TestFetchRecord_HTTPError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchRecord(context.Background(), "BOGUS")
	require.Error(t, err)
}

func TestScan_AliasOrder(t *testing.T) {
	m := map[string]interface{}{
		"second": map[string]interface{}{"raw": 2.0},
		"first":  map[string]interface{}{"raw": 1.0},
	}

	v := scan(m, "first", "second")
	require.NotNil(t, v)
	assert.Equal(t, 1.0, *v)

	assert.Nil(t, scan(m, "missing"))
	assert.Nil(t, scan(nil, "first"))
}

func TestSumOf(t *testing.T) {
	lt := 100.0
	st := 30.0

	total := sumOf(&lt, &st)
	require.NotNil(t, total)
	assert.Equal(t, 130.0, *total)

	partial := sumOf(&lt, nil)
	require.NotNil(t, partial)
	assert.Equal(t, 100.0, *partial)

	assert.Nil(t, sumOf(nil, nil))
}

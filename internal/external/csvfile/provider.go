// Package csvfile serves financial records from a local CSV file, for
// offline screening and fixture-driven runs.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// Provider reads records from a CSV file keyed by ticker. Columns use
// the snake_case record field names; missing columns and blank cells
// stay null and flow through the null-safe pipeline like any other
// provider gap.
// ⭐ SSOT: CSV 파일 데이터 소스는 이 프로바이더에서만
type Provider struct {
	path   string
	logger *logger.Logger

	once    sync.Once
	loadErr error
	records map[string]*contracts.FinancialRecord
}

// NewProvider creates a CSV-backed provider. The file is read lazily
// on the first fetch.
func NewProvider(path string, log *logger.Logger) *Provider {
	return &Provider{path: path, logger: log}
}

// Name returns the provider name
func (p *Provider) Name() string { return "csv" }

// FetchRecord returns the record for one ticker, or an error when the
// file has no row for it
func (p *Provider) FetchRecord(_ context.Context, ticker string) (*contracts.FinancialRecord, error) {
	p.once.Do(p.load)
	if p.loadErr != nil {
		return nil, p.loadErr
	}

	rec, ok := p.records[ticker]
	if !ok {
		return nil, fmt.Errorf("ticker %s not in %s", ticker, p.path)
	}
	// Engines mutate records (EV derivation), so hand out a copy
	clone := *rec
	clone.FetchedAt = time.Now()
	return &clone, nil
}

// load parses the whole file into memory once
func (p *Provider) load() {
	f, err := os.Open(p.path)
	if err != nil {
		p.loadErr = fmt.Errorf("open csv source: %w", err)
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		p.loadErr = fmt.Errorf("read csv source: %w", err)
		return
	}
	if len(rows) == 0 {
		p.loadErr = fmt.Errorf("csv source %s is empty", p.path)
		return
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := header["ticker"]; !ok {
		p.loadErr = fmt.Errorf("csv source %s has no ticker column", p.path)
		return
	}

	p.records = make(map[string]*contracts.FinancialRecord, len(rows)-1)
	for _, row := range rows[1:] {
		rec := parseRow(header, row)
		if rec == nil {
			continue
		}
		p.records[rec.Ticker] = rec
	}

	p.logger.WithFields(map[string]interface{}{
		"path":    p.path,
		"tickers": len(p.records),
	}).Info("CSV source loaded")
}

// parseRow maps one CSV row onto a record. Rows without a ticker are
// dropped.
func parseRow(header map[string]int, row []string) *contracts.FinancialRecord {
	cell := func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(names ...string) *float64 {
		for _, name := range names {
			s := cell(name)
			if s == "" {
				continue
			}
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return contracts.Float(v)
			}
		}
		return nil
	}

	ticker := cell("ticker")
	if ticker == "" {
		return nil
	}

	rec := &contracts.FinancialRecord{
		Ticker:              ticker,
		Name:                cell("name"),
		Price:               num("price"),
		MarketCap:           num("market_cap"),
		EnterpriseValue:     num("enterprise_value"),
		SharesOutstanding:   num("shares_outstanding"),
		EBIT:                num("ebit"),
		EBITDA:              num("ebitda"),
		GrossProfit:         num("gross_profit"),
		NetIncome:           num("net_income"),
		PretaxIncome:        num("pretax_income"),
		IncomeTaxExpense:    num("income_tax_expense"),
		InterestExpense:     num("interest_expense"),
		TotalDebt:           num("total_debt"),
		CashAndEquivalents:  num("cash_and_equivalents"),
		TotalEquity:         num("total_equity", "total_stockholder_equity"),
		TotalAssets:         num("total_assets"),
		OperatingCashFlow:   num("operating_cash_flow"),
		CapitalExpenditures: num("capital_expenditures"),
		DataSource:          "csv",
	}

	// Market cap from price × shares when the file omits it
	if rec.MarketCap == nil && rec.Price != nil && rec.SharesOutstanding != nil {
		rec.MarketCap = contracts.Float(*rec.Price * *rec.SharesOutstanding)
	}

	if s := cell("reporting_date"); s != "" {
		if ts, err := time.Parse("2006-01-02", s); err == nil {
			rec.ReportingDate = &ts
		}
	}

	return rec
}

package naver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/screener/internal/contracts"
)

// Naver reports statement figures in 억원 (100M KRW)
const eokKRW = 1e8

// Name identifies this provider in logs and progress events
func (c *Client) Name() string { return "naver" }

// FetchRecord scrapes the Naver Finance company page for one stock.
// Naver only exposes a condensed earnings table, so this source fills
// fewer fields than Yahoo; everything it cannot read stays null.
// ⭐ SSOT: Naver 재무 데이터 조회는 이 함수에서만
func (c *Client) FetchRecord(ctx context.Context, ticker string) (*contracts.FinancialRecord, error) {
	code := stockCode(ticker)
	html, err := c.fetchHTML(ctx, fmt.Sprintf("/item/main.naver?code=%s", code))
	if err != nil {
		return nil, err
	}

	rec, err := parseCompanyPage(html)
	if err != nil {
		return nil, fmt.Errorf("parse company page for %s: %w", ticker, err)
	}

	rec.Ticker = ticker
	rec.DataSource = c.Name()
	rec.FetchedAt = time.Now()

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"null":   rec.IsNull(),
	}).Debug("Fetched Naver fundamentals")

	return rec, nil
}

// stockCode strips the market suffix: "005930.KS" → "005930"
func stockCode(ticker string) string {
	if i := strings.IndexByte(ticker, '.'); i > 0 {
		return ticker[:i]
	}
	return ticker
}

// parseCompanyPage extracts fundamentals from the item/main HTML
func parseCompanyPage(html string) (*contracts.FinancialRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	rec := &contracts.FinancialRecord{}

	rec.Name = strings.TrimSpace(doc.Find("div.wrap_company h2 a").First().Text())

	// 현재가: blind 텍스트가 스크린리더용 정확한 수치
	if v := parseKRWNumber(doc.Find("p.no_today span.blind").First().Text()); v != nil {
		rec.Price = v
	}

	// 시가총액: "423조 9,422" (조 + 억원)
	if v := parseChoEok(doc.Find("#_market_sum").First().Text()); v != nil {
		rec.MarketCap = v
	}

	// 상장주식수
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if !strings.Contains(row.Find("th").Text(), "상장주식수") {
			return true
		}
		if v := parseKRWNumber(row.Find("td").First().Text()); v != nil {
			rec.SharesOutstanding = v
		}
		return false
	})

	// 기업실적분석: 행 머리글로 찾고 최근 확정 연간 컬럼을 읽는다
	analysis := doc.Find("div.cop_analysis table")
	rec.EBIT = scaled(annualFigure(analysis, "영업이익"), eokKRW)
	rec.NetIncome = scaled(annualFigure(analysis, "당기순이익"), eokKRW)

	return rec, nil
}

// annualFigure returns the named row's most recent completed annual
// value. The analysis table lays out three completed years before the
// estimate column, so the third cell is the latest actual.
func annualFigure(table *goquery.Selection, rowHeader string) *float64 {
	var result *float64
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		header := strings.TrimSpace(row.Find("th").First().Text())
		if !strings.HasPrefix(header, rowHeader) {
			return true
		}

		cells := row.Find("td")
		if cells.Length() >= 3 {
			result = parseKRWNumber(cells.Eq(2).Text())
		}
		return false
	})
	return result
}

// parseKRWNumber parses a comma-grouped Korean number, null for
// blanks and dashes
func parseKRWNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || s == "N/A" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseChoEok parses "N조 M" style amounts where N is 조원 and M is
// 억원, returning KRW
func parseChoEok(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	total := 0.0
	found := false

	if i := strings.Index(s, "조"); i >= 0 {
		if v := parseKRWNumber(s[:i]); v != nil {
			total += *v * 1e12
			found = true
		}
		s = s[i+len("조"):]
	}
	if v := parseKRWNumber(strings.TrimSuffix(strings.TrimSpace(s), "억")); v != nil {
		total += *v * eokKRW
		found = true
	}

	if !found {
		return nil
	}
	return &total
}

// scaled multiplies a nullable value by a unit factor
func scaled(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v * factor
	return &scaled
}

// Package universe lists the investable ticker pool from KRX market
// data, ordered by market capitalization.
package universe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

const defaultBaseURL = "http://data.krx.co.kr"

// Listing is one listed stock with its market snapshot
type Listing struct {
	Ticker    string  // Yahoo-style, market suffix included
	StockCode string  // bare 6-digit KRX code
	Name      string  // 종목명
	Market    string  // KOSPI or KOSDAQ
	MarketCap float64 // KRW
	Price     float64 // KRW
	Shares    float64
}

// Client lists stocks from the KRX market data endpoint
// ⭐ SSOT: KRX 상장종목/시가총액 조회는 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a KRX universe client. Empty baseURL uses the
// public endpoint.
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// krxResponse is the KRX JSON shape: one block of string-typed rows
type krxResponse struct {
	OutBlock1 []krxRow `json:"OutBlock_1"`
}

type krxRow struct {
	StockCode  string `json:"ISU_SRT_CD"` // 종목코드 (단축)
	StockName  string `json:"ISU_ABBRV"`  // 종목명
	ClosePrice string `json:"TDD_CLSPRC"` // 종가
	MarketCap  string `json:"MKTCAP"`     // 시가총액
	Shares     string `json:"LIST_SHRS"`  // 상장주식수
}

// marketParams maps a market name to its KRX code and Yahoo suffix
func marketParams(market string) (mktID, suffix string, err error) {
	switch strings.ToUpper(market) {
	case "KOSPI":
		return "STK", ".KS", nil
	case "KOSDAQ":
		return "KSQ", ".KQ", nil
	default:
		return "", "", fmt.Errorf("unsupported market: %s", market)
	}
}

// TopByMarketCap returns the n largest stocks of a market, descending
// by market cap. n <= 0 returns the full listing.
// ⭐ SSOT: 유니버스 구성은 이 함수에서만
func (c *Client) TopByMarketCap(ctx context.Context, market string, n int) ([]Listing, error) {
	mktID, suffix, err := marketParams(market)
	if err != nil {
		return nil, err
	}

	trdDd := latestTradeDate(time.Now())
	formData := url.Values{
		"bld":         {"dbms/MDC/STAT/standard/MDCSTAT01501"},
		"locale":      {"ko_KR"},
		"mktId":       {mktID},
		"trdDd":       {trdDd},
		"share":       {"1"},
		"money":       {"1"},
		"csvxls_isNo": {"false"},
	}

	// KRX rejects requests without browser-like headers
	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		"Accept":          "application/json, text/javascript, */*; q=0.01",
		"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8",
		"Referer":         "http://data.krx.co.kr/contents/MDC/MDI/mdiLoader/index.cmd?menuId=MDC0201020101",
	}

	c.logger.WithFields(map[string]interface{}{
		"market":     market,
		"trade_date": trdDd,
	}).Info("Fetching universe from KRX")

	resp, err := c.httpClient.PostFormWithHeaders(ctx,
		c.baseURL+"/comm/bldAttendant/getJsonData.cmd", formData, headers)
	if err != nil {
		return nil, fmt.Errorf("KRX request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("KRX returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read KRX response: %w", err)
	}

	var apiResp krxResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode KRX response: %w", err)
	}

	listings := make([]Listing, 0, len(apiResp.OutBlock1))
	for _, row := range apiResp.OutBlock1 {
		shares := parseKRXNumber(row.Shares)
		if row.StockCode == "" || shares == 0 {
			continue
		}
		listings = append(listings, Listing{
			Ticker:    row.StockCode + suffix,
			StockCode: row.StockCode,
			Name:      row.StockName,
			Market:    strings.ToUpper(market),
			MarketCap: parseKRXNumber(row.MarketCap),
			Price:     parseKRXNumber(row.ClosePrice),
			Shares:    shares,
		})
	}

	sort.SliceStable(listings, func(a, b int) bool {
		return listings[a].MarketCap > listings[b].MarketCap
	})

	if n > 0 && n < len(listings) {
		listings = listings[:n]
	}

	c.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(listings),
	}).Info("Universe listed")

	return listings, nil
}

// Tickers extracts the ticker symbols in listing order
func Tickers(listings []Listing) []string {
	tickers := make([]string, len(listings))
	for i, l := range listings {
		tickers[i] = l.Ticker
	}
	return tickers
}

// latestTradeDate picks the most recent session date: before the
// 16:00 close the data is for the previous day, and weekends roll
// back to Friday
func latestTradeDate(now time.Time) string {
	d := now
	if d.Hour() < 16 {
		d = d.AddDate(0, 0, -1)
	}
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d.Format("20060102")
}

// parseKRXNumber parses comma-grouped KRX numerics, 0 for blanks
func parseKRXNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

const defaultBaseURL = "https://query2.finance.yahoo.com"

// quoteSummary modules carrying everything the record needs
const quoteSummaryModules = "price,summaryDetail,financialData,defaultKeyStatistics," +
	"incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"

// Client handles communication with the Yahoo Finance quoteSummary API
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a Yahoo Finance client. Empty baseURL uses the
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

// quoteSummaryEnvelope is the outer API response shape
type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *apiError                    `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// fetchQuoteSummary fetches and unwraps the first quoteSummary result
func (c *Client) fetchQuoteSummary(ctx context.Context, ticker string) (map[string]json.RawMessage, error) {
	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), quoteSummaryModules)

	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		"Accept":     "application/json",
	}

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, headers)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var envelope quoteSummaryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode quoteSummary response: %w", err)
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error for %s: %s", ticker, envelope.QuoteSummary.Error.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary returned no result for %s", ticker)
	}

	return envelope.QuoteSummary.Result[0], nil
}

// module decodes one named module into a generic map. Missing or
// malformed modules decode to nil; field scanning treats that as
// all-null.
func module(result map[string]json.RawMessage, name string) map[string]interface{} {
	raw, ok := result[name]
	if !ok {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// latestStatement pulls the most recent entry from a statement
// history module
func latestStatement(mod map[string]interface{}, listKey string) map[string]interface{} {
	if mod == nil {
		return nil
	}
	list, ok := mod[listKey].([]interface{})
	if !ok || len(list) == 0 {
		return nil
	}
	stmt, _ := list[0].(map[string]interface{})
	return stmt
}

// rawValue unwraps Yahoo's {"raw": n, "fmt": "..."} envelope. Plain
// numbers pass through.
func rawValue(v interface{}) *float64 {
	switch x := v.(type) {
	case float64:
		return &x
	case map[string]interface{}:
		if r, ok := x["raw"].(float64); ok {
			return &r
		}
	}
	return nil
}

// scan returns the value under the first alias key that resolves.
// Yahoo renames statement fields across schema versions, so every
// quantity is looked up through an ordered alias list.
func scan(m map[string]interface{}, keys ...string) *float64 {
	if m == nil {
		return nil
	}
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if f := rawValue(v); f != nil {
				return f
			}
		}
	}
	return nil
}

// scanString returns the first non-empty string among alias keys
func scanString(m map[string]interface{}, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

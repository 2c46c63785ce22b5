package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// fakeProvider scripts per-ticker behavior for engine tests
type fakeProvider struct {
	mu      sync.Mutex
	delays  map[string]time.Duration
	fails   map[string]bool
	flaky   map[string]int // fail this many times, then succeed
	calls   map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		delays: make(map[string]time.Duration),
		fails:  make(map[string]bool),
		flaky:  make(map[string]int),
		calls:  make(map[string]int),
	}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) FetchRecord(ctx context.Context, ticker string) (*contracts.FinancialRecord, error) {
	p.mu.Lock()
	p.calls[ticker]++
	call := p.calls[ticker]
	delay := p.delays[ticker]
	fail := p.fails[ticker]
	flaky := p.flaky[ticker]
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail {
		return nil, errors.New("provider unavailable")
	}
	if flaky > 0 && call <= flaky {
		return nil, errors.New("transient failure")
	}

	return &contracts.FinancialRecord{
		Ticker:             ticker,
		MarketCap:          contracts.Float(1000),
		TotalDebt:          contracts.Float(400),
		CashAndEquivalents: contracts.Float(100),
		EBIT:               contracts.Float(100),
		DataSource:         "fake",
		FetchedAt:          time.Now(),
	}, nil
}

func (p *fakeProvider) callCount(ticker string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[ticker]
}

func TestEngine_PreservesInputOrder(t *testing.T) {
	provider := newFakeProvider()
	// C is slowest, so completion order differs from input order
	provider.delays["C"] = 50 * time.Millisecond
	provider.delays["A"] = 10 * time.Millisecond

	engine := NewEngine(provider, Options{Workers: 3}, logger.Discard())

	records := engine.Fetch(context.Background(), []string{"C", "A", "B"})

	require.Len(t, records, 3)
	assert.Equal(t, "C", records[0].Ticker)
	assert.Equal(t, "A", records[1].Ticker)
	assert.Equal(t, "B", records[2].Ticker)
}

func TestEngine_PartialFailureDegradesToNull(t *testing.T) {
	provider := newFakeProvider()
	provider.fails["B"] = true

	engine := NewEngine(provider, Options{Workers: 2, MaxRetries: 1}, logger.Discard())

	records := engine.Fetch(context.Background(), []string{"A", "B", "C"})

	require.Len(t, records, 3)
	assert.False(t, records[0].IsNull())
	assert.True(t, records[1].IsNull(), "failed ticker must degrade to a null record")
	assert.Equal(t, "B", records[1].Ticker)
	assert.False(t, records[2].IsNull(), "neighbor values must be unaffected")

	// MaxRetries=1 means two attempts total
	assert.Equal(t, 2, provider.callCount("B"))
}

func TestEngine_RetryRecoversTransientFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.flaky["A"] = 1

	engine := NewEngine(provider, Options{MaxRetries: 2}, logger.Discard())

	records := engine.Fetch(context.Background(), []string{"A"})

	require.Len(t, records, 1)
	assert.False(t, records[0].IsNull())
	assert.Equal(t, 2, provider.callCount("A"))
}

func TestEngine_PerTickerTimeout(t *testing.T) {
	provider := newFakeProvider()
	provider.delays["SLOW"] = 200 * time.Millisecond

	engine := NewEngine(provider, Options{Timeout: 20 * time.Millisecond}, logger.Discard())

	records := engine.Fetch(context.Background(), []string{"SLOW", "FAST"})

	assert.True(t, records[0].IsNull(), "fetch exceeding the per-item timeout must degrade")
	assert.False(t, records[1].IsNull())
}

func TestEngine_TimeoutIsWallClockPerTicker(t *testing.T) {
	provider := newFakeProvider()
	provider.delays["STUCK"] = time.Second

	engine := NewEngine(provider, Options{MaxRetries: 2, Timeout: 50 * time.Millisecond}, logger.Discard())

	start := time.Now()
	records := engine.Fetch(context.Background(), []string{"STUCK"})
	elapsed := time.Since(start)

	assert.True(t, records[0].IsNull())
	// Retries share the ticker's budget instead of each getting a
	// fresh timeout
	assert.Less(t, elapsed, 150*time.Millisecond,
		"a stuck ticker must degrade within its own budget, not MaxRetries× it")
}

func TestEngine_DerivesEnterpriseValue(t *testing.T) {
	provider := newFakeProvider()
	engine := NewEngine(provider, Options{}, logger.Discard())

	records := engine.Fetch(context.Background(), []string{"A"})

	require.NotNil(t, records[0].EnterpriseValue)
	// 1000 + 400 - 100
	assert.Equal(t, 1300.0, *records[0].EnterpriseValue)
}

func TestEngine_ProgressEvents(t *testing.T) {
	provider := newFakeProvider()
	provider.fails["B"] = true

	engine := NewEngine(provider, Options{Workers: 2}, logger.Discard())

	var mu sync.Mutex
	events := make(map[string]contracts.ProgressEvent)
	engine.OnProgress(func(ev contracts.ProgressEvent) {
		mu.Lock()
		events[ev.Ticker] = ev
		mu.Unlock()
	})

	engine.Fetch(context.Background(), []string{"A", "B"})

	require.Len(t, events, 2)
	assert.True(t, events["A"].Resolved)
	assert.False(t, events["B"].Resolved)
	assert.Equal(t, 2, events["A"].Total)
	assert.Equal(t, 1, events["B"].Index)
}

package factors

import (
	"math"
	"testing"

	"github.com/wonny/screener/internal/contracts"
)

func col(vals ...interface{}) contracts.Column {
	out := contracts.NewColumn(len(vals))
	for i, v := range vals {
		if v == nil {
			continue
		}
		switch x := v.(type) {
		case float64:
			out[i] = &x
		case int:
			f := float64(x)
			out[i] = &f
		}
	}
	return out
}

func assertCell(t *testing.T, got contracts.Column, i int, want *float64) {
	t.Helper()
	if want == nil {
		if got[i] != nil {
			t.Errorf("row %d = %v, want null", i, *got[i])
		}
		return
	}
	if got[i] == nil {
		t.Fatalf("row %d = null, want %v", i, *want)
	}
	if math.Abs(*got[i]-*want) > 1e-9 {
		t.Errorf("row %d = %v, want %v", i, *got[i], *want)
	}
}

func TestEarningsYield(t *testing.T) {
	got := EarningsYield(col(100, nil, 50), col(1000, 500, nil))

	assertCell(t, got, 0, contracts.Float(0.1))
	assertCell(t, got, 1, nil)
	assertCell(t, got, 2, nil)
}

func TestEVEBIT_ZeroDenominator(t *testing.T) {
	got := EVEBIT(col(1000, 800), col(0, 100))

	assertCell(t, got, 0, nil)
	assertCell(t, got, 1, contracts.Float(8))
}

func TestFCFYield(t *testing.T) {
	// OCF 120, capex reported negative -20 => FCF 140 over mcap 1000
	got := FCFYield(col(120), col(-20), col(1000))
	assertCell(t, got, 0, contracts.Float(0.14))
}

func TestInterestCoverage(t *testing.T) {
	// Negative interest expense uses its magnitude
	got := InterestCoverage(col(100, 100, 100), col(-20, 0, nil))

	assertCell(t, got, 0, contracts.Float(5))
	assertCell(t, got, 1, nil)
	assertCell(t, got, 2, nil)
}

func TestEstimateTaxRate(t *testing.T) {
	tests := []struct {
		name    string
		tax     *float64
		pretax  *float64
		want    float64
	}{
		{"normal", contracts.Float(22), contracts.Float(100), 0.22},
		{"clipped high", contracts.Float(90), contracts.Float(100), maxTaxRate},
		{"negative clipped to zero", contracts.Float(-10), contracts.Float(100), 0},
		{"null pretax falls back", contracts.Float(22), nil, defaultTaxRate},
		{"zero pretax falls back", contracts.Float(22), contracts.Float(0), defaultTaxRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateTaxRate(tt.tax, tt.pretax); got != tt.want {
				t.Errorf("estimateTaxRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestROIC(t *testing.T) {
	// EBIT 100, tax 22/100 => NOPAT 78; invested = 400+700-100 = 1000
	got := ROIC(col(100), col(22), col(100), col(400), col(700), col(100))
	assertCell(t, got, 0, contracts.Float(0.078))
}

func TestROIC_NonPositiveInvestedCapital(t *testing.T) {
	// invested = 100+100-300 < 0
	got := ROIC(col(100), col(25), col(100), col(100), col(100), col(300))
	assertCell(t, got, 0, nil)
}

func TestAccruals(t *testing.T) {
	// (80 - 120) / 1000 = -0.04
	got := Accruals(col(80), col(120), col(1000))
	assertCell(t, got, 0, contracts.Float(-0.04))
}

func TestRiskFlags(t *testing.T) {
	coverage := col(1.0, 5.0, nil, 1.0)
	leverage := col(2.0, 0.5, nil, nil)

	got := RiskFlags(coverage, leverage)

	assertCell(t, got, 0, contracts.Float(2)) // weak coverage + high leverage
	assertCell(t, got, 1, contracts.Float(0))
	assertCell(t, got, 2, contracts.Float(0)) // null inputs add no flag
	assertCell(t, got, 3, contracts.Float(1))
}

func TestAltmanZScore(t *testing.T) {
	got := AltmanZScore(col(0.2), col(0.3), col(0.1), col(1.5), col(0.8))

	want := 1.2*0.2 + 1.4*0.3 + 3.3*0.1 + 0.6*1.5 + 1.0*0.8
	assertCell(t, got, 0, &want)
}

func TestAltmanZScore_NullComponent(t *testing.T) {
	got := AltmanZScore(col(0.2), col(nil), col(0.1), col(1.5), col(0.8))
	assertCell(t, got, 0, nil)
}

func TestBeneishMScore(t *testing.T) {
	// All indices at a benign 1.0 except TATA at 0
	got := BeneishMScore(col(1), col(1), col(1), col(1), col(1), col(1), col(0), col(1))

	want := -4.84 + 0.92 + 0.528 + 0.404 + 0.892 + 0.115 - 0.172 + 0 - 0.327
	assertCell(t, got, 0, &want)
}

func TestAssetGrowth(t *testing.T) {
	got := AssetGrowth(col(1100, 900, nil), col(1000, 0, 1000))

	assertCell(t, got, 0, contracts.Float(0.1))
	assertCell(t, got, 1, nil)
	assertCell(t, got, 2, nil)
}

func TestMomentum12M1M(t *testing.T) {
	got := Momentum12M1M(col(130), col(100))
	assertCell(t, got, 0, contracts.Float(0.3))
}

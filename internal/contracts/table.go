package contracts

import "fmt"

// FactorTable holds computed factor columns for a batch of tickers
// ⭐ SSOT: 팩터 단계 → 스코어링/스크리닝 단계 데이터 전달
// Row i across every column corresponds to Tickers[i]; downstream
// stages must preserve this one-row-per-ticker correspondence.
type FactorTable struct {
	Tickers []string          `json:"tickers"`
	Columns map[string]Column `json:"columns"`
}

// NewFactorTable creates an empty table for the given tickers
func NewFactorTable(tickers []string) *FactorTable {
	return &FactorTable{
		Tickers: tickers,
		Columns: make(map[string]Column),
	}
}

// AddColumn attaches a named column. The column length must match the
// ticker count.
func (t *FactorTable) AddColumn(name string, col Column) error {
	if len(col) != len(t.Tickers) {
		return fmt.Errorf("column %s has %d rows, table has %d tickers", name, len(col), len(t.Tickers))
	}
	t.Columns[name] = col
	return nil
}

// Column returns a named column if present
func (t *FactorTable) Column(name string) (Column, bool) {
	col, ok := t.Columns[name]
	return col, ok
}

// Has reports whether a named column is present
func (t *FactorTable) Has(name string) bool {
	_, ok := t.Columns[name]
	return ok
}

// Len returns the number of rows (tickers)
func (t *FactorTable) Len() int {
	return len(t.Tickers)
}

// Value returns the cell for a ticker row in a named column.
// nil when the column is absent or the cell is null.
func (t *FactorTable) Value(name string, row int) *float64 {
	col, ok := t.Columns[name]
	if !ok || row < 0 || row >= len(col) {
		return nil
	}
	return col[row]
}

// Row returns a ticker's cells across every column
func (t *FactorTable) Row(i int) map[string]*float64 {
	row := make(map[string]*float64, len(t.Columns))
	for name, col := range t.Columns {
		if i >= 0 && i < len(col) {
			row[name] = col[i]
		}
	}
	return row
}

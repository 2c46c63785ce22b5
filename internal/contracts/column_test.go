package contracts

import (
	"math"
	"testing"
)

func TestColumn_Mean(t *testing.T) {
	col := Column{Float(1), Float(2), nil, Float(3)}

	mean, ok := col.Mean()
	if !ok {
		t.Fatal("Mean() ok = false, want true")
	}
	if mean != 2.0 {
		t.Errorf("Mean() = %v, want 2.0", mean)
	}
}

func TestColumn_Mean_AllNull(t *testing.T) {
	col := Column{nil, nil, nil}

	if _, ok := col.Mean(); ok {
		t.Error("Mean() ok = true for all-null column, want false")
	}
}

func TestColumn_Std(t *testing.T) {
	// Sample std of {2, 4, 6} = 2
	col := Column{Float(2), nil, Float(4), Float(6)}

	std, ok := col.Std()
	if !ok {
		t.Fatal("Std() ok = false, want true")
	}
	if math.Abs(std-2.0) > 1e-9 {
		t.Errorf("Std() = %v, want 2.0", std)
	}
}

func TestColumn_Std_SingleValue(t *testing.T) {
	col := Column{Float(5), nil, nil}

	if _, ok := col.Std(); ok {
		t.Error("Std() ok = true with a single known value, want false")
	}
}

func TestColumn_Std_ZeroVariance(t *testing.T) {
	col := Column{Float(3), Float(3), Float(3)}

	std, ok := col.Std()
	if !ok {
		t.Fatal("Std() ok = false, want true")
	}
	if std != 0 {
		t.Errorf("Std() = %v, want 0", std)
	}
}

func TestColumn_Clone(t *testing.T) {
	col := Column{Float(1), nil}
	clone := col.Clone()

	*clone[0] = 99
	if *col[0] != 1 {
		t.Error("Clone() shares storage with the original")
	}
	if clone[1] != nil {
		t.Error("Clone() should preserve nulls")
	}
}

func TestColumn_NonNullCount(t *testing.T) {
	col := Column{Float(1), nil, Float(2), nil}
	if got := col.NonNullCount(); got != 2 {
		t.Errorf("NonNullCount() = %d, want 2", got)
	}
}

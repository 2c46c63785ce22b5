package contracts

import "math"

// Column is a vector of optional numeric values, one entry per ticker.
// nil marks an unknown value; factor formulas and normalization treat
// it as first-class missing data, never as zero.
type Column []*float64

// NewColumn returns an all-null column of length n
func NewColumn(n int) Column {
	return make(Column, n)
}

// NonNullCount returns the number of known values
func (c Column) NonNullCount() int {
	count := 0
	for _, v := range c {
		if v != nil {
			count++
		}
	}
	return count
}

// Mean returns the mean of the known values.
// ok is false when the column has no known values.
func (c Column) Mean() (mean float64, ok bool) {
	sum := 0.0
	n := 0
	for _, v := range c {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Std returns the sample standard deviation (n-1) of the known values.
// ok is false when fewer than 2 values are known.
func (c Column) Std() (std float64, ok bool) {
	mean, meanOK := c.Mean()
	if !meanOK {
		return 0, false
	}

	sumSq := 0.0
	n := 0
	for _, v := range c {
		if v != nil {
			d := *v - mean
			sumSq += d * d
			n++
		}
	}
	if n < 2 {
		return 0, false
	}
	return math.Sqrt(sumSq / float64(n-1)), true
}

// Clone returns a copy sharing no storage with the original
func (c Column) Clone() Column {
	out := make(Column, len(c))
	for i, v := range c {
		if v != nil {
			val := *v
			out[i] = &val
		}
	}
	return out
}

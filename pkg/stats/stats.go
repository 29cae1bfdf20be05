// Package stats provides the column reductions used by aggregation,
// sparsity filtering and standardisation. Missing values are NaN and are
// skipped by every reduction.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Present returns the non-NaN values of x (allocates a copy).
func Present(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Sum returns the sum of the non-missing values; 0 when there are none.
func Sum(x []float64) float64 {
	return floats.Sum(Present(x))
}

// Count returns the number of non-missing values.
func Count(x []float64) float64 {
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) {
			n++
		}
	}
	return float64(n)
}

// Mean computes the average of the non-missing values; NaN when there are none.
func Mean(x []float64) float64 {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN()
	}
	return stat.Mean(p, nil)
}

// Median returns the median of the non-missing values; NaN when there are none.
func Median(x []float64) float64 {
	cp := Present(x)
	n := len(cp)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// MinMax returns the minimum and maximum non-missing values; NaN, NaN when
// there are none.
func MinMax(x []float64) (float64, float64) {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(p), floats.Max(p)
}

// Min returns the smallest non-missing value.
func Min(x []float64) float64 {
	lo, _ := MinMax(x)
	return lo
}

// Max returns the largest non-missing value.
func Max(x []float64) float64 {
	_, hi := MinMax(x)
	return hi
}

// MeanStd returns the mean and the sample (n-1) standard deviation of x.
// Missing values are not skipped: a NaN anywhere yields NaN, and fewer
// than two values yield a NaN deviation.
func MeanStd(x []float64) (mean, std float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	if len(x) == 1 {
		return x[0], math.NaN()
	}
	return stat.MeanStdDev(x, nil)
}

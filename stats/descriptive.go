package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Present returns the values of xs that are not NaN. xs itself is returned
// when no value is missing.
func Present(xs []float64) []float64 {
	for i, x := range xs {
		if !math.IsNaN(x) {
			continue
		}
		out := make([]float64, i, len(xs)-1)
		copy(out, xs[:i])
		for _, y := range xs[i+1:] {
			if !math.IsNaN(y) {
				out = append(out, y)
			}
		}
		return out
	}
	return xs
}

// Mean returns the arithmetic mean of the non-missing values of xs, or NaN
// if there are none.
func Mean(xs []float64) float64 {
	xs = Present(xs)
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// StdDev returns the sample standard deviation of the non-missing values
// of xs (denominator n-1). It is NaN for fewer than two values.
func StdDev(xs []float64) float64 {
	xs = Present(xs)
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// StdErr returns the standard error of the mean, StdDev(xs)/sqrt(n), n being
// the number of non-missing values.
func StdErr(xs []float64) float64 {
	xs = Present(xs)
	return StdDev(xs) / math.Sqrt(float64(len(xs)))
}

// Median returns the median of the non-missing values of xs, or NaN if
// there are none. For an even number of values it is the mean of the two
// middle values.
func Median(xs []float64) float64 {
	m, err := mstats.Median(Present(xs))
	if err != nil {
		return math.NaN()
	}
	return m
}

// Quartiles returns the first and third quartiles of xs, each taken as the
// median of the lower and upper half of the sorted values (the middle value
// is excluded from both halves when n is odd). Both are NaN for fewer than
// two non-missing values.
func Quartiles(xs []float64) (q1, q3 float64) {
	xs = Present(xs)
	if len(xs) < 2 {
		return math.NaN(), math.NaN()
	}
	q, err := mstats.Quartile(xs)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return q.Q1, q.Q3
}

// TQuantile returns the inverse CDF of Student's t distribution with df
// degrees of freedom at probability p. It is NaN for df < 1 or p outside
// [0, 1].
func TQuantile(p float64, df int) float64 {
	if df < 1 || math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return t.Quantile(p)
}

// CIHalfWidth returns the half width of the two-sided confidence interval
// of the mean at the given level, StdErr(xs) * t(level/2 + 0.5, n-1).
func CIHalfWidth(xs []float64, level float64) float64 {
	xs = Present(xs)
	return StdErr(xs) * TQuantile(level/2+0.5, len(xs)-1)
}

// Summary holds the descriptive statistics of one sample.
type Summary struct {
	N      int // non-missing values
	Mean   float64
	Std    float64
	Stde   float64
	CI     float64 // half width of the confidence interval
	CIUp   float64
	CIDown float64
}

// Describe computes the Summary of xs at the given confidence level. NaN
// values are missing and left out of every statistic, N included.
// Statistics that are undefined for the sample size are NaN.
func Describe(xs []float64, level float64) Summary {
	xs = Present(xs)
	s := Summary{
		N:    len(xs),
		Mean: Mean(xs),
		Std:  StdDev(xs),
		Stde: StdErr(xs),
		CI:   CIHalfWidth(xs, level),
	}
	s.CIUp = s.Mean + s.CI
	s.CIDown = s.Mean - s.CI
	return s
}

// Scale multiplies the spread statistics (Std, Stde, CI) by f and
// re-derives the interval bounds. N and Mean are unchanged.
func (s Summary) Scale(f float64) Summary {
	s.Std *= f
	s.Stde *= f
	s.CI *= f
	s.CIUp = s.Mean + s.CI
	s.CIDown = s.Mean - s.CI
	return s
}

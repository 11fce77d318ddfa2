// Package stats provides the descriptive statistics used by the summary and
// outlier packages.
//
// Undefined results are reported as NaN rather than errors: the standard
// deviation of a single value, the t quantile for zero degrees of freedom,
// the median of an empty sample. NaN inputs mark missing values and are
// skipped, so one missing cell does not spoil the statistics of its group:
//
//	stats.Mean([]float64{1, math.NaN(), 3}) // 2
//
// # Descriptive Statistics
//
//	mean := stats.Mean(xs)
//	sd := stats.StdDev(xs)   // sample standard deviation, n-1
//	se := stats.StdErr(xs)   // sd / sqrt(n)
//	med := stats.Median(xs)
//	q1, q3 := stats.Quartiles(xs)
//
// # Confidence Intervals
//
// The half width of a confidence interval for the mean uses the Student t
// quantile with n-1 degrees of freedom:
//
//	// 95% interval: t(0.975, n-1) * se
//	ci := stats.CIHalfWidth(xs, 0.95)
//
//	// All of the above at once
//	s := stats.Describe(xs, 0.95)
//	fmt.Printf("%.2f [%.2f, %.2f]\n", s.Mean, s.CIDown, s.CIUp)
//
// # Location Statistics
//
// Outlier bounds are centered on a Location, the mean or the median:
//
//	center := stats.LocMedian.Apply(xs)
package stats

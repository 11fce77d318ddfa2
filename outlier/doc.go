// Package outlier removes rows whose measure falls outside a band computed
// per group of rows.
//
// With the default StdDev method the band of a group is
//
//	center - k*sd < x < center + k*sd
//
// where center is the group mean (or median), sd the sample standard
// deviation of the group and k the multiplier. Both bounds are exclusive.
//
// # Basic Usage
//
//	// Drop reaction times more than 2 sd from their subject/condition mean
//	cfg := outlier.DefaultConfig()
//	cfg.Multiplier = 2
//	clean, err := outlier.Filter(t, []string{"subject", "cond"}, "rt", cfg)
//
// # Reports
//
// Detect keeps track of how many rows each group lost:
//
//	report, err := outlier.Detect(t, []string{"cond"}, "rt", cfg)
//	fmt.Printf("removed %d rows\n", report.Removed())
//	perGroup, _ := report.Table() // cond, n, removed, lower, upper
//	clean := report.Apply(t)
//
// # Tukey Fences
//
// The IQR method builds the band from the quartiles instead:
//
//	cfg := &outlier.Config{Method: outlier.IQR, Multiplier: 1.5}
//
// A group of a single row has no spread; its row is removed unless
// Config.KeepSingletons is set.
package outlier

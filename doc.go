// Package summaryse provides outlier removal and group summaries of tabular
// data, including within-subject summaries with normalized error estimates.
//
// Summaries report, per group and measure, the count, mean, standard
// deviation, standard error and the half width of a Student-t confidence
// interval. Within-subject summaries first remove between-subject variability
// from each measure (Cousineau normalization) and then correct the spread of
// the normalized values for the number of within-subject conditions (Morey).
//
// # Quick Start
//
// Load a table and summarize reaction times per condition:
//
//	t, _ := table.LoadCSV("data/reaction_times.csv", nil)
//	out, _ := summary.Summarize(t, []string{"rt"}, []string{"cond"}, summary.DefaultConfidence)
//
// Drop values further than two standard deviations from their subject and
// condition mean:
//
//	cfg := outlier.DefaultConfig()
//	cfg.Multiplier = 2
//	clean, _ := outlier.Filter(t, []string{"subject", "cond"}, "rt", cfg)
//
// Summarize a within-subject design:
//
//	wcfg := within.DefaultConfig()
//	wcfg.Within = []string{"cond"}
//	wcfg.Subject = []string{"subject"}
//	res, _ := within.Summarize(clean, []string{"rt"}, wcfg)
//
// # Packages
//
//   - table: columnar tables, grouping and CSV input/output
//   - stats: descriptive statistics and Student-t quantiles
//   - outlier: per-group outlier detection and filtering
//   - summary: per-group summary statistics
//   - within: within-subject normalization and corrected summaries
//
// The demo command runs these steps from the command line, driven by flags or
// a TOML analysis file.
//
// # References
//
//   - Cousineau, D. (2005). Confidence intervals in within-subject designs:
//     A simpler solution to Loftus and Masson's method.
//   - Morey, R. D. (2008). Confidence intervals from normalized data:
//     A correction to Cousineau (2005).
package summaryse

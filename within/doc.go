// Package within summarizes repeated-measures data after removing
// between-subject variability.
//
// Normalize recenters every subject onto the grand mean:
//
//	m_norm = m - subject mean of m + grand mean of m
//
// so that differences between subjects no longer inflate the spread of the
// within-subject conditions. A subject is identified by the subject columns
// together with the between-subject factor columns.
//
// Summarize normalizes, then summarizes both the normed and the raw measures
// per combination of between and within factors. With within-subject
// factors, std, stde and ci are multiplied by the correction of Morey (2008),
//
//	sqrt(n / (n-1))
//
// where n is the number of within-subject conditions.
//
// # Basic Usage
//
//	cfg := within.DefaultConfig()
//	cfg.Subject = []string{"subject"}
//	cfg.Within = []string{"cond"}
//	res, err := within.Summarize(t, []string{"rt"}, cfg)
//	// res.Summary: cond, rt_norm_len ... rt_norm_ci, rt_len ... rt_ci
//	// res.Raw:     cond, rt_len, rt_mean
//
// # References
//
//   - Morey, R. D. (2008). Confidence intervals from normalized data: A
//     correction to Cousineau (2005). Tutorials in Quantitative Methods for
//     Psychology, 4(2), 61-64.
//   - Cousineau, D. (2005). Confidence intervals in within-subject designs:
//     A simpler solution to Loftus and Masson's method.
package within

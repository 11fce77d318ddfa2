// Package summary computes count, mean, standard deviation, standard error
// and a Student-t confidence interval of measures within groups of rows.
//
// # Basic Usage
//
//	// Summarize reaction times per condition at 95% confidence
//	s, err := summary.Summarize(t, []string{"rt"}, []string{"cond"}, summary.DefaultConfidence)
//
// The result holds one row per distinct value of the grouping columns. For
// every measure m it carries seven columns:
//
//	m_len     number of rows in the group
//	m_mean    mean
//	m_std     sample standard deviation (n-1)
//	m_stde    standard error, m_std / sqrt(m_len)
//	m_ciUp    m_mean + m_ci
//	m_ciDown  m_mean - m_ci
//	m_ci      half width, m_stde * t(confidence/2 + 0.5, m_len-1)
//
// A group with a single row has a mean but no spread: its std, stde and
// interval columns are NaN.
//
// # Column Names
//
// Derived column names are built from a Key:
//
//	summary.Key{Measure: "rt", Stat: summary.CI}.String() // "rt_ci"
//	summary.Column("rt", summary.Mean)                    // "rt_mean"
//
// # Typed Results
//
// Groups returns the statistics without rendering them to a table:
//
//	rows, err := summary.Groups(t, []string{"rt"}, []string{"cond"}, 0.95)
//	for _, r := range rows {
//	    fmt.Println(r.Key, r.Measures["rt"].Mean)
//	}
package summary

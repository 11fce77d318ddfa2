package within

import (
	"math"

	"github.com/sartorproj/summaryse/summary"
	"github.com/sartorproj/summaryse/table"
)

// Config holds the design of a within-subject summary.
type Config struct {
	Between    []string // between-subject factor columns
	Within     []string // within-subject factor columns
	Subject    []string // columns identifying a subject
	Confidence float64  // confidence level (default: 0.95)
}

// DefaultConfig returns a configuration with no factors and a 95%
// confidence level.
func DefaultConfig() *Config {
	return &Config{
		Confidence: summary.DefaultConfidence,
	}
}

// GroupColumns returns the grouping columns of the summary, the between
// factors followed by the within factors.
func (c *Config) GroupColumns() []string {
	cols := make([]string, 0, len(c.Between)+len(c.Within))
	cols = append(cols, c.Between...)
	return append(cols, c.Within...)
}

// Result is a within-subject summary.
type Result struct {
	// Summary holds, per group, the statistics of each m_norm followed by
	// each raw measure m, with std, stde and ci corrected. ciUp and ciDown
	// are recomputed from the corrected ci, so they differ from outputs
	// that only rescale std, stde and ci.
	Summary *table.Table

	// Raw holds the un-normed m_len and m_mean per group.
	Raw *table.Table

	// Groups holds the corrected statistics behind Summary.
	Groups []summary.Row

	// Correction is the factor applied to std, stde and ci; 1 when there
	// is no within-subject factor.
	Correction float64

	// WithinLevels is the number of within-subject conditions, the
	// product of the number of levels of each within factor.
	WithinLevels int
}

// Summarize summarizes measures after removing between-subject
// variability (see Normalize), grouping by the between and within factors.
//
// With within-subject factors the spread statistics are multiplied by the
// Morey (2008) correction sqrt(n/(n-1)), n being the number of
// within-subject conditions. Without them, or when they take a single
// level, no correction is applied.
func Summarize(t *table.Table, measures []string, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	groupCols := cfg.GroupColumns()

	rawRows, err := summary.Groups(t, measures, groupCols, cfg.Confidence)
	if err != nil {
		return nil, err
	}
	raw, err := summary.Render(t, groupCols, measures, rawRows, summary.Len, summary.Mean)
	if err != nil {
		return nil, err
	}

	normed, err := Normalize(t, cfg.Subject, measures, cfg.Between)
	if err != nil {
		return nil, err
	}

	names := append(NormColumns(measures), measures...)
	rows, err := summary.Groups(normed, names, groupCols, cfg.Confidence)
	if err != nil {
		return nil, err
	}

	levels := withinLevels(rows, len(cfg.Between), len(cfg.Within))
	correction := Correction(levels)
	if correction != 1 {
		for _, row := range rows {
			for m, s := range row.Measures {
				row.Measures[m] = s.Scale(correction)
			}
		}
	}

	out, err := summary.Render(normed, groupCols, names, rows, summary.Stats...)
	if err != nil {
		return nil, err
	}

	return &Result{
		Summary:      out,
		Raw:          raw,
		Groups:       rows,
		Correction:   correction,
		WithinLevels: levels,
	}, nil
}

// Correction returns the Morey (2008) bias correction sqrt(n/(n-1)) for n
// within-subject conditions, or 1 when n <= 1.
func Correction(n int) float64 {
	if n <= 1 {
		return 1
	}
	return math.Sqrt(float64(n) / float64(n-1))
}

// withinLevels multiplies, over the within factors, the number of distinct
// values each takes among the summary groups. Within factors follow the
// between factors in the group keys.
func withinLevels(rows []summary.Row, offset, n int) int {
	levels := 1
	for j := offset; j < offset+n; j++ {
		seen := make(map[string]bool)
		for _, r := range rows {
			seen[r.Key[j]] = true
		}
		levels *= len(seen)
	}
	return levels
}

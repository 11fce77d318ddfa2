package summary

import (
	"errors"
	"fmt"

	"github.com/sartorproj/summaryse/stats"
	"github.com/sartorproj/summaryse/table"
)

// DefaultConfidence is the default confidence level of the intervals.
const DefaultConfidence = 0.95

var (
	ErrConfidence = errors.New("confidence level must be in (0, 1)")
	ErrNoMeasures = errors.New("no measure columns")
)

// Row holds the statistics of one group.
type Row struct {
	Key      []string                 // grouping column values
	Rows     []int                    // rows of the source table in the group
	Measures map[string]stats.Summary // statistics by measure name
}

// Groups partitions t by groupCols and describes every measure within each
// group. Groups are ordered by key (see table.GroupBy).
//
// Missing (NaN) measure values are left out of every statistic, so {m}_len
// counts the non-missing values. Statistics that are undefined for a group,
// such as the standard deviation of a single value, are NaN.
func Groups(t *table.Table, measures, groupCols []string, confidence float64) ([]Row, error) {
	if err := validate(t, measures, groupCols, confidence); err != nil {
		return nil, err
	}

	groups, err := t.GroupBy(groupCols...)
	if err != nil {
		return nil, err
	}

	columns := make([][]float64, len(measures))
	for i, m := range measures {
		if columns[i], err = t.Float64s(m); err != nil {
			return nil, err
		}
	}

	rows := make([]Row, len(groups))
	for gi, g := range groups {
		row := Row{
			Key:      g.Key,
			Rows:     g.Rows,
			Measures: make(map[string]stats.Summary, len(measures)),
		}
		xs := make([]float64, g.Len())
		for i, m := range measures {
			for j, r := range g.Rows {
				xs[j] = columns[i][r]
			}
			row.Measures[m] = stats.Describe(xs, confidence)
		}
		rows[gi] = row
	}
	return rows, nil
}

// Summarize returns one row per group of t with the grouping columns
// followed by, for each measure, the columns {m}_len, {m}_mean, {m}_std,
// {m}_stde, {m}_ciUp, {m}_ciDown and {m}_ci.
//
// The confidence interval half width is stde * t(confidence/2 + 0.5, n-1).
func Summarize(t *table.Table, measures, groupCols []string, confidence float64) (*table.Table, error) {
	rows, err := Groups(t, measures, groupCols, confidence)
	if err != nil {
		return nil, err
	}
	return Render(t, groupCols, measures, rows, Stats...)
}

// Render builds the summary table for rows computed from t. Only the listed
// statistics are rendered, in the given order, for each measure.
func Render(t *table.Table, groupCols, measures []string, rows []Row, only ...Stat) (*table.Table, error) {
	groups := make([]table.Group, len(rows))
	for i, r := range rows {
		groups[i] = table.Group{Key: r.Key, Rows: r.Rows}
	}
	out, err := t.Keys(groups, groupCols...)
	if err != nil {
		return nil, err
	}

	cols := make([]table.Column, 0, len(measures)*len(only))
	for _, m := range measures {
		for _, s := range only {
			values := make([]float64, len(rows))
			for i, r := range rows {
				sum, ok := r.Measures[m]
				if !ok {
					return nil, fmt.Errorf("summary: no statistics for measure %q", m)
				}
				values[i] = value(sum, s)
			}
			cols = append(cols, table.NewFloat64Column(Column(m, s), values))
		}
	}

	derived, err := table.New(cols...)
	if err != nil {
		return nil, err
	}
	return out.Join(derived)
}

func value(s stats.Summary, stat Stat) float64 {
	switch stat {
	case Len:
		return float64(s.N)
	case Mean:
		return s.Mean
	case Std:
		return s.Std
	case Stde:
		return s.Stde
	case CIUp:
		return s.CIUp
	case CIDown:
		return s.CIDown
	case CI:
		return s.CI
	}
	panic(fmt.Sprintf("summary: unknown statistic %d", int(stat)))
}

func validate(t *table.Table, measures, groupCols []string, confidence float64) error {
	if t.Len() == 0 {
		return table.ErrEmptyTable
	}
	if len(measures) == 0 {
		return ErrNoMeasures
	}
	if !(confidence > 0 && confidence < 1) {
		return fmt.Errorf("%w: got %v", ErrConfidence, confidence)
	}
	return t.Require(groupCols, measures)
}

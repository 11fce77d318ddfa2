package within

import (
	"math"

	"github.com/sartorproj/summaryse/stats"
	"github.com/sartorproj/summaryse/table"
)

const (
	NormSuffix        = "_norm" // normalized measure columns
	SubjectMeanSuffix = "_mean" // per-subject mean columns
)

var nan = math.NaN()

// NormColumn returns the name of the normalized column of measure.
func NormColumn(measure string) string {
	return measure + NormSuffix
}

// NormColumns returns the normalized column names of measures.
func NormColumns(measures []string) []string {
	names := make([]string, len(measures))
	for i, m := range measures {
		names[i] = NormColumn(m)
	}
	return names
}

// Normalize removes between-subject variability from measures. A subject is
// a distinct combination of subjectCols and betweenCols values.
//
// For every measure m the result gains two columns:
//
//	m_mean  the subject's mean of m, repeated on each of its rows
//	m_norm  m - m_mean + grand mean of m over the whole table
//
// Means skip missing measure values, so a missing cell yields NaN in its own
// m_norm cell only. Rows keep their order. Rows with a missing subject value
// belong to no subject; their added cells are NaN.
func Normalize(t *table.Table, subjectCols, measures, betweenCols []string) (*table.Table, error) {
	if t.Len() == 0 {
		return nil, table.ErrEmptyTable
	}
	keys := make([]string, 0, len(subjectCols)+len(betweenCols))
	keys = append(keys, subjectCols...)
	keys = append(keys, betweenCols...)
	if err := t.Require(keys, measures); err != nil {
		return nil, err
	}

	subjects, err := t.GroupBy(keys...)
	if err != nil {
		return nil, err
	}

	out := t
	for _, m := range measures {
		values, err := t.Float64s(m)
		if err != nil {
			return nil, err
		}
		grand := stats.Mean(values)

		subjectMean := make([]float64, len(values))
		norm := make([]float64, len(values))
		for i := range subjectMean {
			subjectMean[i] = nan
			norm[i] = nan
		}

		xs := make([]float64, 0, len(values))
		for _, s := range subjects {
			xs = xs[:0]
			for _, r := range s.Rows {
				xs = append(xs, values[r])
			}
			mean := stats.Mean(xs)
			for _, r := range s.Rows {
				subjectMean[r] = mean
				norm[r] = values[r] - mean + grand
			}
		}

		if out, err = out.With(table.NewFloat64Column(m+SubjectMeanSuffix, subjectMean)); err != nil {
			return nil, err
		}
		if out, err = out.With(table.NewFloat64Column(NormColumn(m), norm)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

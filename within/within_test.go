package within

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/summaryse/stats"
	"github.com/sartorproj/summaryse/summary"
	"github.com/sartorproj/summaryse/table"
)

var approx = cmp.Options{cmpopts.EquateApprox(0, 1e-9), cmpopts.EquateNaNs()}

func reactionTimes(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewFloat64Column("subject", []float64{1, 1, 2, 2}),
		table.NewStringColumn("cond", []string{"A", "B", "A", "B"}),
		table.NewFloat64Column("rt", []float64{100, 120, 200, 240}),
	)
	require.NoError(t, err)
	return tbl
}

// factorial returns 3 subjects x cond(A, B) x load(lo, hi), with a group
// column splitting subjects between two groups. Subject ids repeat across
// groups.
func factorial(t *testing.T) *table.Table {
	t.Helper()
	var (
		group, cond, load []string
		subject, rt       []float64
	)
	base := map[string]float64{"g1": 300, "g2": 450}
	for _, g := range []string{"g1", "g2"} {
		for s := 1; s <= 3; s++ {
			for ci, c := range []string{"A", "B"} {
				for li, l := range []string{"lo", "hi"} {
					group = append(group, g)
					subject = append(subject, float64(s))
					cond = append(cond, c)
					load = append(load, l)
					rt = append(rt, base[g]+float64(s*37)+float64(ci*20)+float64(li*45)+float64((s*ci+li)%3))
				}
			}
		}
	}
	tbl, err := table.New(
		table.NewStringColumn("group", group),
		table.NewFloat64Column("subject", subject),
		table.NewStringColumn("cond", cond),
		table.NewStringColumn("load", load),
		table.NewFloat64Column("rt", rt),
	)
	require.NoError(t, err)
	return tbl
}

func column(t *testing.T, tbl *table.Table, name string) []float64 {
	t.Helper()
	values, err := tbl.Float64s(name)
	require.NoError(t, err, name)
	return values
}

func TestNormalize(t *testing.T) {
	require := require.New(t)
	tbl := reactionTimes(t)

	out, err := Normalize(tbl, []string{"subject"}, []string{"rt"}, nil)
	require.NoError(err)

	require.Equal(tbl.Len(), out.Len())
	require.Equal([]string{"subject", "cond", "rt", "rt_mean", "rt_norm"}, out.Names())
	require.Equal([]float64{100, 120, 200, 240}, column(t, out, "rt"))
	require.Equal([]float64{110, 110, 220, 220}, column(t, out, "rt_mean"))
	require.Equal([]float64{155, 175, 145, 185}, column(t, out, "rt_norm"))

	// Input is left untouched
	require.False(tbl.Has("rt_norm"))
}

func TestNormalizeSubjectMeansEqualGrandMean(t *testing.T) {
	tbl := factorial(t)
	between := []string{"group"}

	out, err := Normalize(tbl, []string{"subject"}, []string{"rt"}, between)
	require.NoError(t, err)

	grand := stats.Mean(column(t, tbl, "rt"))
	norm := column(t, out, "rt_norm")

	subjects, err := out.GroupBy("subject", "group")
	require.NoError(t, err)
	require.Len(t, subjects, 6, "subject ids repeat across groups")

	for _, s := range subjects {
		xs := make([]float64, 0, s.Len())
		for _, r := range s.Rows {
			xs = append(xs, norm[r])
		}
		if got := stats.Mean(xs); math.Abs(got-grand) > 1e-9 {
			t.Errorf("Subject %v: normed mean %f, want grand mean %f", s.Key, got, grand)
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	tbl := reactionTimes(t)

	_, err := Normalize(tbl, []string{"nope"}, []string{"rt"}, nil)
	require.True(t, errors.Is(err, table.ErrMissingColumn), "missing subject: %v", err)

	_, err = Normalize(tbl, []string{"subject"}, []string{"cond"}, nil)
	require.True(t, errors.Is(err, table.ErrNotNumeric), "categorical measure: %v", err)

	_, err = Normalize(tbl.Take(nil), []string{"subject"}, []string{"rt"}, nil)
	require.True(t, errors.Is(err, table.ErrEmptyTable), "empty: %v", err)
}

func TestCorrection(t *testing.T) {
	require := require.New(t)

	require.Equal(1.0, Correction(0))
	require.Equal(1.0, Correction(1))
	require.InDelta(math.Sqrt2, Correction(2), 1e-15)
	require.InDelta(math.Sqrt(4.0/3.0), Correction(4), 1e-15)

	for n := 2; n < 10; n++ {
		require.Greater(Correction(n), 1.0)
	}
}

func TestSummarize(t *testing.T) {
	require := require.New(t)
	tbl := reactionTimes(t)

	cfg := DefaultConfig()
	cfg.Within = []string{"cond"}
	cfg.Subject = []string{"subject"}

	res, err := Summarize(tbl, []string{"rt"}, cfg)
	require.NoError(err)

	require.Equal(2, res.WithinLevels)
	require.InDelta(math.Sqrt2, res.Correction, 1e-15)

	require.Equal([]string{"cond", "rt_len", "rt_mean"}, res.Raw.Names())
	require.Equal([]float64{150, 180}, column(t, res.Raw, "rt_mean"))

	s := res.Summary
	require.Equal(1+2*len(summary.Stats), s.Width())
	require.Equal("rt_norm_len", s.Names()[1])
	require.Equal("rt_len", s.Names()[1+len(summary.Stats)])

	want := map[string][]float64{
		"rt_norm_len":  {2, 2},
		"rt_norm_mean": {150, 180},
		"rt_norm_std":  {10, 10},
		"rt_norm_stde": {math.Sqrt(50), math.Sqrt(50)},
		"rt_len":       {2, 2},
		"rt_mean":      {150, 180},
		"rt_std":       {100, 120},
	}
	for name, values := range want {
		if diff := cmp.Diff(values, column(t, s, name), approx); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	ci := column(t, s, "rt_norm_ci")
	up := column(t, s, "rt_norm_ciUp")
	down := column(t, s, "rt_norm_ciDown")
	require.InDelta(math.Sqrt(50)*12.706204736174698, ci[0], 1e-4)
	require.InDelta(150+ci[0], up[0], 1e-9)
	require.InDelta(150-ci[0], down[0], 1e-9)
}

func TestSummarizeCorrectionIsExactFactor(t *testing.T) {
	tbl := factorial(t)

	cfg := &Config{
		Between:    []string{"group"},
		Within:     []string{"cond", "load"},
		Subject:    []string{"subject"},
		Confidence: 0.9,
	}
	res, err := Summarize(tbl, []string{"rt"}, cfg)
	require.NoError(t, err)

	require.Equal(t, 4, res.WithinLevels)
	require.InDelta(t, math.Sqrt(4.0/3.0), res.Correction, 1e-15)
	require.Equal(t, 8, res.Summary.Len(), "2 groups x 2 conds x 2 loads")

	normed, err := Normalize(tbl, cfg.Subject, []string{"rt"}, cfg.Between)
	require.NoError(t, err)
	plain, err := summary.Summarize(normed, []string{"rt_norm", "rt"}, cfg.GroupColumns(), cfg.Confidence)
	require.NoError(t, err)

	for _, m := range []string{"rt_norm", "rt"} {
		for _, stat := range summary.Stats {
			name := summary.Column(m, stat)
			want := column(t, plain, name)
			got := column(t, res.Summary, name)

			switch stat {
			case summary.Std, summary.Stde, summary.CI:
				scaled := make([]float64, len(want))
				for i, v := range want {
					scaled[i] = v * res.Correction
				}
				want = scaled
			case summary.CIUp, summary.CIDown:
				continue
			}
			if diff := cmp.Diff(want, got, approx); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
			}
		}
	}
}

func TestSummarizeWithoutWithinFactors(t *testing.T) {
	tbl := reactionTimes(t)

	cfg := &Config{
		Between:    []string{"cond"},
		Subject:    []string{"subject"},
		Confidence: 0.95,
	}
	res, err := Summarize(tbl, []string{"rt"}, cfg)
	require.NoError(t, err)
	require.Equal(t, 1.0, res.Correction)
	require.Equal(t, 1, res.WithinLevels)

	plain, err := summary.Summarize(tbl, []string{"rt"}, []string{"cond"}, 0.95)
	require.NoError(t, err)

	for _, stat := range summary.Stats {
		name := summary.Column("rt", stat)
		if diff := cmp.Diff(column(t, plain, name), column(t, res.Summary, name), approx); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	// Each subject appears once per between condition, so every normed
	// value collapses onto the grand mean.
	require.Equal(t, []float64{165, 165}, column(t, res.Summary, "rt_norm_mean"))
}

func TestSummarizeSingleWithinLevel(t *testing.T) {
	tbl, err := table.New(
		table.NewFloat64Column("subject", []float64{1, 1, 2, 2}),
		table.NewStringColumn("cond", []string{"A", "A", "A", "A"}),
		table.NewFloat64Column("rt", []float64{100, 110, 200, 210}),
	)
	require.NoError(t, err)

	res, err := Summarize(tbl, []string{"rt"}, &Config{
		Within:     []string{"cond"},
		Subject:    []string{"subject"},
		Confidence: 0.95,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.WithinLevels)
	require.Equal(t, 1.0, res.Correction)
	require.False(t, math.IsInf(column(t, res.Summary, "rt_std")[0], 0))
}

func TestSummarizeErrors(t *testing.T) {
	tbl := reactionTimes(t)

	_, err := Summarize(tbl, []string{"rt"}, &Config{Within: []string{"nope"}, Confidence: 0.95})
	require.True(t, errors.Is(err, table.ErrMissingColumn), "%v", err)

	_, err = Summarize(tbl, []string{"rt"}, &Config{Subject: []string{"subject"}, Confidence: 2})
	require.True(t, errors.Is(err, summary.ErrConfidence), "%v", err)
}

func TestNormalizeMissingMeasure(t *testing.T) {
	tbl, err := table.New(
		table.NewFloat64Column("subject", []float64{1, 1, 2, 2}),
		table.NewStringColumn("cond", []string{"A", "B", "A", "B"}),
		table.NewFloat64Column("rt", []float64{100, 120, 200, math.NaN()}),
	)
	require.NoError(t, err)

	out, err := Normalize(tbl, []string{"subject"}, []string{"rt"}, nil)
	require.NoError(t, err)

	// Grand mean 140 over the present values; subject 2 has mean 200
	want := map[string][]float64{
		"rt_mean": {110, 110, 200, 200},
		"rt_norm": {130, 150, 140, math.NaN()},
	}
	for name, values := range want {
		if diff := cmp.Diff(values, column(t, out, name), approx); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	res, err := Summarize(tbl, []string{"rt"}, &Config{
		Within:     []string{"cond"},
		Subject:    []string{"subject"},
		Confidence: 0.95,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1}, column(t, res.Summary, "rt_norm_len"))
	require.Equal(t, []float64{135, 150}, column(t, res.Summary, "rt_norm_mean"))
}

package outlier

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/sartorproj/summaryse/stats"
	"github.com/sartorproj/summaryse/table"
)

// Method selects how the band around each group is built.
type Method int

const (
	// StdDev keeps center - k*sd < x < center + k*sd.
	StdDev Method = iota
	// IQR keeps Q1 - k*iqr < x < Q3 + k*iqr (Tukey fences).
	IQR
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case StdDev:
		return "sd"
	case IQR:
		return "iqr"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses a method name ("sd" or "iqr").
func ParseMethod(s string) (Method, error) {
	switch s {
	case "sd", "std", "":
		return StdDev, nil
	case "iqr":
		return IQR, nil
	}
	return StdDev, fmt.Errorf("unknown outlier method %q", s)
}

// Config holds configuration for outlier detection.
type Config struct {
	Location       stats.Location // Center of the StdDev band (default: mean)
	Multiplier     float64        // Band half width in spreads (default: 1.0)
	Method         Method         // Band construction (default: StdDev)
	KeepSingletons bool           // Keep rows of single-row groups, whose spread is undefined
	Logger         *slog.Logger   // Receives one debug record per group (optional)
}

// DefaultConfig returns the default outlier configuration.
func DefaultConfig() *Config {
	return &Config{
		Location:   stats.LocMean,
		Multiplier: 1.0,
		Method:     StdDev,
	}
}

// GroupReport describes the band of one group and how many rows fell
// outside it.
type GroupReport struct {
	Key     []string
	Size    int // rows in the group, missing measures included
	Removed int
	Center  float64 // location for StdDev, median for IQR
	Spread  float64 // sample std for StdDev, interquartile range for IQR
	Lower   float64 // exclusive lower bound
	Upper   float64 // exclusive upper bound
}

// Report is the result of outlier detection.
type Report struct {
	Keep   []int // retained rows of the input, ascending
	Groups []GroupReport

	groupCols []string
	source    *table.Table
	firstRows []int
}

// Removed returns the total number of rows outside their group's band.
func (r *Report) Removed() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Removed
	}
	return n
}

// Apply returns the rows of t retained by the report. t must be the table
// the report was computed from.
func (r *Report) Apply(t *table.Table) *table.Table {
	return t.Take(r.Keep)
}

// Table renders the per-group report: the grouping columns followed by
// n, removed, lower and upper.
func (r *Report) Table() (*table.Table, error) {
	groups := make([]table.Group, len(r.Groups))
	for i, g := range r.Groups {
		groups[i] = table.Group{Key: g.Key, Rows: []int{r.firstRows[i]}}
	}
	keys, err := r.source.Keys(groups, r.groupCols...)
	if err != nil {
		return nil, err
	}

	n := make([]float64, len(r.Groups))
	removed := make([]float64, len(r.Groups))
	lower := make([]float64, len(r.Groups))
	upper := make([]float64, len(r.Groups))
	for i, g := range r.Groups {
		n[i] = float64(g.Size)
		removed[i] = float64(g.Removed)
		lower[i] = g.Lower
		upper[i] = g.Upper
	}
	counts, err := table.New(
		table.NewFloat64Column("n", n),
		table.NewFloat64Column("removed", removed),
		table.NewFloat64Column("lower", lower),
		table.NewFloat64Column("upper", upper),
	)
	if err != nil {
		return nil, err
	}
	return keys.Join(counts)
}

// Detect partitions t by groupCols and marks, within each group, the rows
// whose measure lies outside the group's band. Bounds are exclusive: a value
// exactly on a bound is an outlier.
//
// Bands are computed over the group's non-missing measure values. A row with
// a missing measure is always removed. A group with a single non-missing
// value has no spread, so its bounds are NaN and that row is removed unless
// cfg.KeepSingletons is set. Rows with a missing grouping value belong to no
// group and are removed.
func Detect(t *table.Table, groupCols []string, measure string, cfg *Config) (*Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if t.Len() == 0 {
		return nil, table.ErrEmptyTable
	}
	if err := t.Require(groupCols, []string{measure}); err != nil {
		return nil, err
	}
	values, err := t.Float64s(measure)
	if err != nil {
		return nil, err
	}
	groups, err := t.GroupBy(groupCols...)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, t.Len())
	report := &Report{
		Groups:    make([]GroupReport, len(groups)),
		groupCols: groupCols,
		source:    t,
		firstRows: make([]int, len(groups)),
	}

	xs := make([]float64, 0, t.Len())
	for gi, g := range groups {
		xs = xs[:0]
		for _, r := range g.Rows {
			xs = append(xs, values[r])
		}

		gr := band(xs, cfg)
		gr.Key = g.Key
		gr.Size = g.Len()
		single := len(stats.Present(xs)) == 1

		for _, r := range g.Rows {
			x := values[r]
			if math.IsNaN(x) {
				gr.Removed++
				continue
			}
			if (single && cfg.KeepSingletons) || (gr.Lower < x && x < gr.Upper) {
				keep[r] = true
			} else {
				gr.Removed++
			}
		}

		report.Groups[gi] = gr
		report.firstRows[gi] = g.First()

		if cfg.Logger != nil {
			cfg.Logger.Debug("outlier band",
				"measure", measure,
				"group", g.Key,
				"n", gr.Size,
				"removed", gr.Removed,
				"lower", gr.Lower,
				"upper", gr.Upper,
			)
		}
	}

	for r, ok := range keep {
		if ok {
			report.Keep = append(report.Keep, r)
		}
	}
	return report, nil
}

func band(xs []float64, cfg *Config) GroupReport {
	var gr GroupReport
	k := cfg.Multiplier

	switch cfg.Method {
	case IQR:
		q1, q3 := stats.Quartiles(xs)
		gr.Center = stats.Median(xs)
		gr.Spread = q3 - q1
		gr.Lower = q1 - gr.Spread*k
		gr.Upper = q3 + gr.Spread*k
	default:
		gr.Center = cfg.Location.Apply(xs)
		gr.Spread = stats.StdDev(xs)
		gr.Lower = gr.Center - gr.Spread*k
		gr.Upper = gr.Center + gr.Spread*k
	}
	return gr
}

// Filter returns the rows of t whose measure lies strictly inside the band
// of their group, keeping all columns and the original row order.
func Filter(t *table.Table, groupCols []string, measure string, cfg *Config) (*table.Table, error) {
	report, err := Detect(t, groupCols, measure, cfg)
	if err != nil {
		return nil, err
	}
	return report.Apply(t), nil
}

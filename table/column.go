package table

import (
	"math"
	"strconv"
)

// Kind identifies the value type stored in a column.
type Kind int

const (
	Numeric     Kind = iota // float64 values
	Categorical             // string values
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a named sequence of values. All columns of a Table have the
// same length.
type Column interface {
	Name() string
	Len() int
	Kind() Kind

	// Label renders the value at row i. Labels are used as grouping keys,
	// so two rows share a label iff their values are equal.
	Label(i int) string

	// Missing reports whether the value at row i is missing.
	Missing(i int) bool

	// Take returns a new column holding the values at rows, in that order.
	Take(rows []int) Column

	// Rename returns a copy of the column under a new name.
	Rename(name string) Column

	less(i, j int) bool
}

// Float64Column is a numeric column. NaN marks a missing value.
type Float64Column struct {
	name   string
	values []float64
}

// NewFloat64Column creates a numeric column. The values slice is not copied.
func NewFloat64Column(name string, values []float64) *Float64Column {
	return &Float64Column{name: name, values: values}
}

func (c *Float64Column) Name() string { return c.name }
func (c *Float64Column) Len() int     { return len(c.values) }
func (c *Float64Column) Kind() Kind   { return Numeric }

// Values returns the underlying values. Callers must not modify them.
func (c *Float64Column) Values() []float64 { return c.values }

// At returns the value at row i.
func (c *Float64Column) At(i int) float64 { return c.values[i] }

// Label formats the value at row i. Negative zero is labelled "0".
func (c *Float64Column) Label(i int) string {
	v := c.values[i]
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (c *Float64Column) Missing(i int) bool { return math.IsNaN(c.values[i]) }

func (c *Float64Column) Take(rows []int) Column {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = c.values[r]
	}
	return &Float64Column{name: c.name, values: values}
}

func (c *Float64Column) Rename(name string) Column {
	values := make([]float64, len(c.values))
	copy(values, c.values)
	return &Float64Column{name: name, values: values}
}

func (c *Float64Column) less(i, j int) bool { return c.values[i] < c.values[j] }

// StringColumn is a categorical column. The empty string marks a missing
// value.
type StringColumn struct {
	name   string
	values []string
}

// NewStringColumn creates a categorical column. The values slice is not
// copied.
func NewStringColumn(name string, values []string) *StringColumn {
	return &StringColumn{name: name, values: values}
}

func (c *StringColumn) Name() string { return c.name }
func (c *StringColumn) Len() int     { return len(c.values) }
func (c *StringColumn) Kind() Kind   { return Categorical }

// Values returns the underlying values. Callers must not modify them.
func (c *StringColumn) Values() []string { return c.values }

// At returns the value at row i.
func (c *StringColumn) At(i int) string { return c.values[i] }

func (c *StringColumn) Label(i int) string { return c.values[i] }

func (c *StringColumn) Missing(i int) bool { return c.values[i] == "" }

func (c *StringColumn) Take(rows []int) Column {
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = c.values[r]
	}
	return &StringColumn{name: c.name, values: values}
}

func (c *StringColumn) Rename(name string) Column {
	values := make([]string, len(c.values))
	copy(values, c.values)
	return &StringColumn{name: name, values: values}
}

func (c *StringColumn) less(i, j int) bool { return c.values[i] < c.values[j] }

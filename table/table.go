package table

import (
	"fmt"
)

// Table is an ordered set of named columns of equal length. Rows are
// identified by position only.
//
// A Table is immutable through its methods: every transformation returns a
// new Table and leaves the receiver untouched.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a table from columns. All columns must have the same length
// and distinct names.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := t.index[c.Name()]; ok {
			return nil, &ColumnError{Column: c.Name(), Err: ErrDuplicateColumn}
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, &ColumnError{
				Column: c.Name(),
				Err:    ErrShapeMismatch,
				Reason: fmt.Sprintf("has %d rows, want %d", c.Len(), t.rows),
			}
		}
		t.index[c.Name()] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, missing(name)
	}
	return t.columns[i], nil
}

// Columns returns the named columns, failing on the first missing name.
func (t *Table) Columns(names ...string) ([]Column, error) {
	cols := make([]Column, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

// Float64s returns the values of a numeric column.
func (t *Table) Float64s(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	fc, ok := c.(*Float64Column)
	if !ok {
		return nil, &ColumnError{Column: name, Err: ErrNotNumeric, Reason: c.Kind().String()}
	}
	return fc.values, nil
}

// Require checks that every name refers to a column. Numeric names must
// additionally refer to numeric columns.
func (t *Table) Require(names []string, numeric []string) error {
	for _, name := range names {
		if !t.Has(name) {
			return missing(name)
		}
	}
	for _, name := range numeric {
		if _, err := t.Float64s(name); err != nil {
			return err
		}
	}
	return nil
}

// Take returns a table holding the given rows, in that order.
func (t *Table) Take(rows []int) *Table {
	out := &Table{
		columns: make([]Column, len(t.columns)),
		index:   t.index,
		rows:    len(rows),
	}
	for i, c := range t.columns {
		out.columns[i] = c.Take(rows)
	}
	return out
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols, err := t.Columns(names...)
	if err != nil {
		return nil, err
	}
	return New(cols...)
}

// With returns a table with c appended, or replacing the column of the same
// name in place.
func (t *Table) With(c Column) (*Table, error) {
	if len(t.columns) > 0 && c.Len() != t.rows {
		return nil, &ColumnError{
			Column: c.Name(),
			Err:    ErrShapeMismatch,
			Reason: fmt.Sprintf("has %d rows, want %d", c.Len(), t.rows),
		}
	}
	cols := make([]Column, len(t.columns), len(t.columns)+1)
	copy(cols, t.columns)
	if i, ok := t.index[c.Name()]; ok {
		cols[i] = c
	} else {
		cols = append(cols, c)
	}
	return New(cols...)
}

// Drop returns a table without the named columns. Unknown names are
// ignored.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	cols := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !drop[c.Name()] {
			cols = append(cols, c)
		}
	}
	// Column names and lengths come from a valid table.
	out, _ := New(cols...)
	if len(cols) == 0 {
		out.rows = t.rows
	}
	return out
}

// Join returns a table with the columns of t followed by the columns of
// other. Both tables must have the same number of rows and no common
// column names.
func (t *Table) Join(other *Table) (*Table, error) {
	cols := make([]Column, 0, len(t.columns)+len(other.columns))
	cols = append(cols, t.columns...)
	cols = append(cols, other.columns...)
	if len(t.columns) > 0 && len(other.columns) > 0 && t.rows != other.rows {
		return nil, &ColumnError{
			Column: other.columns[0].Name(),
			Err:    ErrShapeMismatch,
			Reason: fmt.Sprintf("has %d rows, want %d", other.rows, t.rows),
		}
	}
	return New(cols...)
}

package table

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn   = errors.New("missing field")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrEmptyTable      = errors.New("empty table")
	ErrNotNumeric      = errors.New("column is not numeric")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// ColumnError reports a problem with a named column.
type ColumnError struct {
	Column string // column name
	Err    error  // one of the sentinel errors above
	Reason string // optional detail
}

func (e *ColumnError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("table: column %q: %v: %s", e.Column, e.Err, e.Reason)
	}
	return fmt.Sprintf("table: column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

func missing(name string) error {
	return &ColumnError{Column: name, Err: ErrMissingColumn}
}

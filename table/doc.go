// Package table provides the tabular data structure the analysis packages
// operate on.
//
// A Table is an ordered set of named columns of equal length. Columns are
// either numeric (Float64Column, NaN marks a missing value) or categorical
// (StringColumn, the empty string marks a missing value).
//
// # Creating a Table
//
//	t, err := table.New(
//	    table.NewFloat64Column("subject", []float64{1, 1, 2, 2}),
//	    table.NewStringColumn("cond", []string{"A", "B", "A", "B"}),
//	    table.NewFloat64Column("rt", []float64{100, 120, 200, 240}),
//	)
//
// Construction fails with ErrShapeMismatch when the columns differ in
// length and ErrDuplicateColumn when two columns share a name.
//
// # Grouping
//
// Partition rows by the values of one or more columns:
//
//	groups, err := t.GroupBy("cond")
//	for _, g := range groups {
//	    fmt.Println(g.Key, g.Rows)
//	}
//
// Groups come back ordered by key. Rows with a missing value in a grouping
// column are left out of every group.
//
// # Loading from CSV
//
//	t, err := table.LoadCSV("rt.csv", nil)
//
//	// Keep numeric subject ids categorical
//	opts := table.DefaultCSVOptions()
//	opts.Strings = []string{"subject"}
//	t, err := table.ReadCSV(reader, opts)
//
// # Errors
//
// Lookups of unknown columns fail with a *ColumnError wrapping
// ErrMissingColumn; use errors.Is to test for it.
package table

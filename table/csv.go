package table

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Columns   []string // Columns to keep, in file order (default: all)
	Strings   []string // Columns loaded as categorical even if numeric (e.g. subject ids)
	IDColumn  string   // Column to filter rows on (optional)
	IDFilter  string   // Value rows must have in IDColumn
	Delimiter rune     // Field delimiter (default: ',')
	SkipRows  int      // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Delimiter: ',',
	}
}

// LoadCSV loads a table from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open csv")
	}
	defer file.Close()

	t, err := ReadCSV(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return t, nil
}

func isNA(s string) bool {
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

// ReadCSV reads a table from r. The first (non-skipped) row is the header.
// A column is numeric when every non-missing cell parses as a float;
// otherwise it is categorical.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, errors.Wrap(err, "skip rows")
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	idIdx := -1
	if opts.IDColumn != "" {
		for i, h := range header {
			if h == opts.IDColumn {
				idIdx = i
			}
		}
		if idIdx < 0 {
			return nil, missing(opts.IDColumn)
		}
	}

	keep := make([]int, 0, len(header))
	if len(opts.Columns) == 0 {
		for i := range header {
			keep = append(keep, i)
		}
	} else {
		want := make(map[string]bool, len(opts.Columns))
		for _, name := range opts.Columns {
			want[name] = true
		}
		for i, h := range header {
			if want[h] {
				keep = append(keep, i)
				delete(want, h)
			}
		}
		for _, name := range opts.Columns {
			if want[name] {
				return nil, missing(name)
			}
		}
	}

	cells := make([][]string, len(keep))
	line := 1 + opts.SkipRows
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "read line %d", line)
		}
		if len(record) != len(header) {
			return nil, errors.Wrapf(ErrShapeMismatch, "line %d has %d fields, header has %d", line, len(record), len(header))
		}

		if idIdx >= 0 && strings.TrimSpace(record[idIdx]) != opts.IDFilter {
			continue
		}

		for j, idx := range keep {
			cells[j] = append(cells[j], strings.TrimSpace(record[idx]))
		}
	}

	forced := make(map[string]bool, len(opts.Strings))
	for _, name := range opts.Strings {
		forced[name] = true
	}

	cols := make([]Column, len(keep))
	for j, idx := range keep {
		name := header[idx]
		if !forced[name] {
			if values, ok := parseFloats(cells[j]); ok {
				cols[j] = NewFloat64Column(name, values)
				continue
			}
		}
		values := cells[j]
		for i, v := range values {
			if isNA(v) {
				values[i] = ""
			}
		}
		cols[j] = NewStringColumn(name, values)
	}
	return New(cols...)
}

func parseFloats(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))
	for i, s := range cells {
		if isNA(s) {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// SaveCSV writes a table to a CSV file.
func SaveCSV(t *Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "create csv")
	}

	if err := WriteCSV(file, t); err != nil {
		file.Close()
		return errors.Wrapf(err, "save %s", filename)
	}
	return file.Close()
}

// WriteCSV writes a table as CSV with a header row. Floats are written in
// shortest form; missing values as NaN for numeric columns and empty for
// categorical ones.
func WriteCSV(w io.Writer, t *Table) error {
	buf := bufio.NewWriter(w)
	writer := csv.NewWriter(buf)

	if err := writer.Write(t.Names()); err != nil {
		return err
	}

	record := make([]string, t.Width())
	for r := 0; r < t.rows; r++ {
		for i, c := range t.columns {
			record[i] = c.Label(r)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}

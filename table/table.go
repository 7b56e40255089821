// Package table implements the in-memory measurement table.
//
// A Table holds the cells of a measurement file as read from CSV.
// Typed accessors parse a column on demand, and transformations return new tables
// so that a table read from disk can be reused by several cleaning steps.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/relab/expdata"
)

// Table is a set of named columns with one row per observation.
type Table struct {
	source  string
	columns []string
	index   map[string]int
	rows    [][]string
}

// New returns a table with the given columns and rows.
// Duplicate column names are made unique by appending ".1", ".2" and so on.
func New(columns []string, rows ...[]string) (*Table, error) {
	t := &Table{
		columns: uniqueNames(columns),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		t.index[c] = i
	}
	for i, row := range rows {
		if len(row) != len(t.columns) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i, len(row), len(t.columns))
		}
		t.rows = append(t.rows, append([]string(nil), row...))
	}
	return t, nil
}

func uniqueNames(columns []string) []string {
	var (
		names = make([]string, len(columns))
		taken = make(map[string]bool, len(columns))
		count = make(map[string]int)
	)
	for i, c := range columns {
		name := c
		for taken[name] {
			count[c]++
			name = c + "." + strconv.Itoa(count[c])
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// Source returns the path of the file that the table was read from, if any.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Has returns true if the table has the column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Row returns a copy of the cells of row i.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Value returns the cell of row i in the column.
func (t *Table) Value(i int, column string) (string, bool) {
	c, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.rows[i][c], true
}

// Strings returns the cells of the column.
func (t *Table) Strings(column string) ([]string, error) {
	c, ok := t.index[column]
	if !ok {
		return nil, t.missing(column)
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[c]
	}
	return values, nil
}

// Floats parses the column as floating point numbers. Empty cells are NaN.
func (t *Table) Floats(column string) ([]float64, error) {
	cells, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, t.parseError(i, column, cell, err)
		}
		values[i] = v
	}
	return values, nil
}

// Ints parses the column as integers.
func (t *Table) Ints(column string) ([]int64, error) {
	cells, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	values := make([]int64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
		if err != nil {
			return nil, t.parseError(i, column, cell, err)
		}
		values[i] = v
	}
	return values, nil
}

// Filter returns a new table with the rows for which keep returns true.
// The argument to keep is the row index in t.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := t.derive()
	for i, row := range t.rows {
		if keep(i) {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// WithColumn returns a new table where the column holds values.
// The column is appended if it does not exist and replaced otherwise.
func (t *Table) WithColumn(column string, values []string) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, want %d", column, len(values), len(t.rows))
	}
	out := t.derive()
	c, ok := t.index[column]
	if !ok {
		c = len(out.columns)
		out.columns = append(out.columns, column)
		out.index[column] = c
	}
	out.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		r := make([]string, len(out.columns))
		copy(r, row)
		r[c] = values[i]
		out.rows[i] = r
	}
	return out, nil
}

// derive returns an empty table with the columns of t. Rows are shared, not copied;
// tables never modify their rows in place.
func (t *Table) derive() *Table {
	out := &Table{
		source:  t.source,
		columns: append([]string(nil), t.columns...),
		index:   make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	return out
}

func (t *Table) missing(column string) error {
	return &expdata.ParseError{Path: t.source, Row: -1, Column: column, Err: expdata.ErrMissingColumn}
}

func (t *Table) parseError(row int, column, value string, err error) error {
	return &expdata.ParseError{Path: t.source, Row: row, Column: column, Value: value, Err: err}
}

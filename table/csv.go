package table

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go-hep.org/x/hep/csvutil"
	"go.uber.org/multierr"
)

// Read reads a table from a CSV file with a header row.
func Read(path string) (tbl *Table, err error) {
	f, err := csvutil.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	f.Reader.Comma = ','
	f.Reader.ReuseRecord = false

	header, err := f.Reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		record, err := f.Reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, record)
	}

	tbl, err = New(header, rows...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tbl.source = path
	return tbl, nil
}

// Write writes the table to a CSV file with a header row.
func (t *Table) Write(path string) (err error) {
	f, err := csvutil.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if err := f.Writer.Write(t.columns); err != nil {
		return fmt.Errorf("%s: failed to write header: %w", path, err)
	}
	if err := f.Writer.WriteAll(t.rows); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

package expdata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no measurement file exists for an iteration.
	ErrNotFound = errors.New("no measurements found")
	// ErrAmbiguous is returned when more than one measurement file exists for an iteration.
	ErrAmbiguous = errors.New("ambiguous measurements")
	// ErrMissingColumn is returned when a required column is not in a table.
	ErrMissingColumn = errors.New("missing column")
)

// NotFoundError reports that no file of the category exists below Dir.
// The iteration is absent or its run did not complete.
type NotFoundError struct {
	Dir      string
	Category Category
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("no %s measurements found in %s", err.Category, err.Dir)
}

// Is reports whether target is ErrNotFound.
func (err *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousError reports that more than one file of the category exists below Dir.
type AmbiguousError struct {
	Dir      string
	Category Category
	Matches  []string
}

func (err *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous data: found %d %s measurements in %s", len(err.Matches), err.Category, err.Dir)
}

// Is reports whether target is ErrAmbiguous.
func (err *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// ParseError reports a cell that could not be interpreted.
// Row is the zero-based data row, or -1 if the error is not tied to a row.
type ParseError struct {
	Path   string
	Row    int
	Column string
	Value  string
	Err    error
}

func (err *ParseError) Error() string {
	path := err.Path
	if path == "" {
		path = "<table>"
	}
	if err.Row < 0 {
		return fmt.Sprintf("%s: column %q: %v", path, err.Column, err.Err)
	}
	return fmt.Sprintf("%s: row %d: column %q: cannot parse %q: %v", path, err.Row, err.Column, err.Value, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

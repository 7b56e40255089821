package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattn/go-zglob"
	"github.com/relab/expdata"
	"golang.org/x/exp/slices"
)

// Locate returns the measurement file of the category below dir.
// It fails with a *expdata.NotFoundError if there is no such file,
// and with a *expdata.AmbiguousError if there is more than one.
func Locate(dir string, category expdata.Category) (string, error) {
	matches, err := find(dir, category.Pattern())
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", &expdata.NotFoundError{Dir: dir, Category: category}
	case 1:
		return matches[0], nil
	}
	return "", &expdata.AmbiguousError{Dir: dir, Category: category, Matches: matches}
}

// find returns the files at any depth below dir whose names match pattern, sorted.
// Symbolic links to files are matched; symbolic links to directories are not followed.
// A missing dir has no matches.
func find(dir, pattern string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	matches, err := zglob.Glob(filepath.Join(dir, "**", pattern))
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = filepath.FromSlash(m)
	}
	slices.Sort(matches)
	return matches, nil
}

package cleaning

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/relab/expdata"
	"github.com/relab/expdata/table"
)

// timeLayouts are the accepted observation time formats, tried in order.
// Layouts without a zone are read as UTC.
// Fractional seconds are accepted after the seconds field of any layout.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05-07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var errTimeFormat = errors.New("unrecognized time format")

// ParseTime parses an observation time and truncates it to whole seconds.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, errTimeFormat
}

// observationTimes parses the observation time column in whole seconds since the Unix epoch.
func observationTimes(t *table.Table) ([]int64, error) {
	cells, err := t.Strings(expdata.ObservationTime)
	if err != nil {
		return nil, err
	}
	seconds := make([]int64, len(cells))
	for i, cell := range cells {
		ts, err := ParseTime(cell)
		if err != nil {
			return nil, &expdata.ParseError{Path: t.Source(), Row: i, Column: expdata.ObservationTime, Value: cell, Err: err}
		}
		seconds[i] = ts.Unix()
	}
	return seconds, nil
}

// Normalize returns a table with a relative_seconds column holding the offset
// of each row's observation time from the earliest observation time in the table.
func Normalize(t *table.Table) (*table.Table, error) {
	seconds, err := observationTimes(t)
	if err != nil {
		return nil, err
	}
	var min int64
	for i, s := range seconds {
		if i == 0 || s < min {
			min = s
		}
	}
	offsets := make([]string, len(seconds))
	for i, s := range seconds {
		offsets[i] = strconv.FormatInt(s-min, 10)
	}
	return t.WithColumn(expdata.RelativeSeconds, offsets)
}

// ExperimentLength returns the number of seconds between the earliest and the latest observation.
func ExperimentLength(t *table.Table) (int64, error) {
	seconds, err := observationTimes(t)
	if err != nil {
		return 0, err
	}
	if len(seconds) == 0 {
		return 0, nil
	}
	min, max := seconds[0], seconds[0]
	for _, s := range seconds[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return max - min, nil
}

package cleaning

import (
	"math"

	"github.com/relab/expdata/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the values of one metric column. Missing values are not counted.
type Summary struct {
	Key     string
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Describe summarizes the metric columns of the table. Keys missing from the table are skipped.
func Describe(t *table.Table, keys []string) ([]Summary, error) {
	var summaries []Summary
	for _, key := range keys {
		if !t.Has(key) {
			continue
		}
		values, err := t.Floats(key)
		if err != nil {
			return nil, err
		}
		present := make([]float64, 0, len(values))
		for _, v := range values {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		s := Summary{
			Key:     key,
			Count:   len(present),
			Missing: len(values) - len(present),
			Mean:    math.NaN(),
			StdDev:  math.NaN(),
			Min:     math.NaN(),
			Max:     math.NaN(),
		}
		if len(present) > 0 {
			s.Mean, s.StdDev = stat.PopMeanStdDev(present, nil)
			s.Min = floats.Min(present)
			s.Max = floats.Max(present)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

package cleaning

import (
	"math"
	"strconv"

	"github.com/relab/expdata"
	"github.com/relab/expdata/logging"
	"github.com/relab/expdata/table"
	"gonum.org/v1/gonum/stat"
)

// DefaultThreshold is the default z-score threshold of the outlier filter.
const DefaultThreshold = 3

// OutlierFilter drops rows with extreme metric values.
//
// The keys are evaluated one at a time, in order. For each key present in the table,
// the z-score of every row is computed from the population mean and standard deviation
// of the column, and the rows whose absolute z-score exceeds the threshold are dropped
// before the next key is evaluated. The result therefore depends on the order of the keys.
type OutlierFilter struct {
	// Threshold is the largest accepted absolute z-score. Zero means DefaultThreshold.
	Threshold float64
	// Keys are the metric columns to evaluate. Nil means expdata.MetricKeys().
	Keys []string
	// Logger receives the summary of dropped rows. Nil disables logging.
	Logger logging.Logger
	// KeepScores adds a <key>_zscore column for every evaluated key, holding the
	// score the row had when the key was evaluated.
	KeepScores bool
}

// ScoreColumn returns the name of the column that holds the z-scores of key.
func ScoreColumn(key string) string {
	return key + "_zscore"
}

func (f OutlierFilter) threshold() float64 {
	if f.Threshold == 0 {
		return DefaultThreshold
	}
	return math.Abs(f.Threshold)
}

func (f OutlierFilter) keys() []string {
	if f.Keys == nil {
		return expdata.MetricKeys()
	}
	return f.Keys
}

// Apply returns the table without outliers and the number of dropped rows.
// Keys missing from the table are skipped.
func (f OutlierFilter) Apply(t *table.Table) (*table.Table, int, error) {
	var (
		threshold = f.threshold()
		points    = t.Len()
		dropped   int
	)
	for _, key := range f.keys() {
		if !t.Has(key) {
			continue
		}
		values, err := t.Floats(key)
		if err != nil {
			return nil, 0, err
		}
		scores := ZScores(values)
		if f.KeepScores {
			formatted := make([]string, len(scores))
			for i, z := range scores {
				formatted[i] = strconv.FormatFloat(z, 'g', -1, 64)
			}
			if t, err = t.WithColumn(ScoreColumn(key), formatted); err != nil {
				return nil, 0, err
			}
		}
		before := t.Len()
		t = t.Filter(func(i int) bool {
			return !(math.Abs(scores[i]) > threshold)
		})
		dropped += before - t.Len()
	}
	if dropped > 0 && f.Logger != nil {
		f.Logger.Infof("dropped %d outliers (%.0f%%)", dropped, 100*float64(dropped)/float64(points))
	}
	return t, dropped, nil
}

// ZScores returns the standard score of each value relative to the population mean
// and standard deviation of values. If any value is NaN, or the values have no spread,
// the scores are NaN.
func ZScores(values []float64) []float64 {
	var w Welford
	for _, v := range values {
		w.Update(v)
	}
	mean, variance := w.Population()
	std := math.Sqrt(variance)
	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = stat.StdScore(v, mean, std)
	}
	return scores
}

package plotting

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot/plotter"
)

// Sample is a metric value observed at an offset from the start of an iteration.
type Sample struct {
	Offset time.Duration
	Value  float64
}

// Series is a named list of samples.
type Series struct {
	Label   string
	Samples []Sample
}

// AverageByInterval groups the samples into consecutive time intervals starting at zero,
// and returns a struct that yields (x, y) points where x is the start of the interval in seconds
// and y is the average value of the samples in the interval. Empty intervals and NaN values are skipped.
func AverageByInterval(samples []Sample, interval time.Duration) (plotter.XYer, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %v", interval)
	}
	type bucket struct {
		sum float64
		num int
	}
	buckets := make(map[int64]*bucket)
	for _, s := range samples {
		if math.IsNaN(s.Value) || s.Offset < 0 {
			continue
		}
		i := int64(s.Offset / interval)
		b, ok := buckets[i]
		if !ok {
			b = &bucket{}
			buckets[i] = b
		}
		b.sum += s.Value
		b.num++
	}
	keys := maps.Keys(buckets)
	slices.Sort(keys)
	points := make(xyer, len(keys))
	for j, i := range keys {
		b := buckets[i]
		points[j] = point{
			x: (time.Duration(i) * interval).Seconds(),
			y: b.sum / float64(b.num),
		}
	}
	return points, nil
}

type point struct {
	x float64
	y float64
}

type xyer []point

// Len returns the number of x, y pairs.
func (xy xyer) Len() int {
	return len(xy)
}

// XY returns an x, y pair.
func (xy xyer) XY(i int) (x float64, y float64) {
	p := xy[i]
	return p.x, p.y
}

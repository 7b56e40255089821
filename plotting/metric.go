// Package plotting renders cleaned measurement tables.
package plotting

import (
	"fmt"
	"image/color"
	"time"

	"github.com/relab/expdata"
	"github.com/relab/expdata/table"
	"go-hep.org/x/hep/hplot"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// MetricPlot plots one metric column of normalized tables over time.
type MetricPlot struct {
	metric string
	series map[string][]Sample
}

// NewMetricPlot returns a plot of the metric column.
func NewMetricPlot(metric string) MetricPlot {
	return MetricPlot{
		metric: metric,
		series: make(map[string][]Sample),
	}
}

// Add adds the rows of a normalized table.
// Rows are split into one series per source name if the table has a name column;
// otherwise all rows belong to the series with the given label.
func (p *MetricPlot) Add(label string, tbl *table.Table) error {
	values, err := tbl.Floats(p.metric)
	if err != nil {
		return err
	}
	offsets, err := tbl.Ints(expdata.RelativeSeconds)
	if err != nil {
		return fmt.Errorf("table is not normalized: %w", err)
	}
	names, _ := tbl.Strings(expdata.SourceName)
	for i, v := range values {
		key := label
		if names != nil {
			key = label + "/" + names[i]
		}
		p.series[key] = append(p.series[key], Sample{
			Offset: time.Duration(offsets[i]) * time.Second,
			Value:  v,
		})
	}
	return nil
}

// Series returns the series of the plot, sorted by label.
func (p *MetricPlot) Series() []Series {
	labels := maps.Keys(p.series)
	slices.Sort(labels)
	series := make([]Series, len(labels))
	for i, label := range labels {
		samples := append([]Sample(nil), p.series[label]...)
		slices.SortStableFunc(samples, func(a, b Sample) int {
			switch {
			case a.Offset < b.Offset:
				return -1
			case a.Offset > b.Offset:
				return 1
			}
			return 0
		})
		series[i] = Series{Label: label, Samples: samples}
	}
	return series
}

// PlotAverage plots the average value of each series per time interval and saves it to filename.
// The file format is chosen by the file extension.
func (p *MetricPlot) PlotAverage(filename string, interval time.Duration) error {
	plt := plot.New()

	grid := plotter.NewGrid()
	grid.Horizontal.Color = color.Gray{Y: 200}
	grid.Horizontal.Dashes = plotutil.Dashes(2)
	grid.Vertical.Color = color.Gray{Y: 200}
	grid.Vertical.Dashes = plotutil.Dashes(2)
	plt.Add(grid)

	plt.Title.Text = p.metric
	plt.X.Label.Text = "Time (seconds)"
	plt.X.Tick.Marker = hplot.Ticks{N: 10}
	plt.Y.Label.Text = p.metric
	plt.Y.Tick.Marker = hplot.Ticks{N: 10}

	var lines []interface{}
	for _, s := range p.Series() {
		xy, err := AverageByInterval(s.Samples, interval)
		if err != nil {
			return err
		}
		lines = append(lines, s.Label, xy)
	}
	if err := plotutil.AddLinePoints(plt, lines...); err != nil {
		return fmt.Errorf("failed to add line plot: %w", err)
	}

	if err := plt.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

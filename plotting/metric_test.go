package plotting_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/relab/expdata/plotting"
	"github.com/relab/expdata/table"
)

func xys(t *testing.T, samples []plotting.Sample, interval time.Duration) [][2]float64 {
	t.Helper()
	xy, err := plotting.AverageByInterval(samples, interval)
	if err != nil {
		t.Fatal(err)
	}
	points := make([][2]float64, xy.Len())
	for i := range points {
		x, y := xy.XY(i)
		points[i] = [2]float64{x, y}
	}
	return points
}

func TestAverageByInterval(t *testing.T) {
	samples := []plotting.Sample{
		{Offset: 0, Value: 1},
		{Offset: 1 * time.Second, Value: 3},
		{Offset: 2 * time.Second, Value: 10},
		{Offset: 3 * time.Second, Value: math.NaN()},
		{Offset: 7 * time.Second, Value: 4},
	}
	want := [][2]float64{{0, 2}, {2, 10}, {6, 4}}
	if diff := cmp.Diff(want, xys(t, samples, 2*time.Second)); diff != "" {
		t.Errorf("AverageByInterval() mismatch (-want +got):\n%s", diff)
	}
	if got := xys(t, nil, time.Second); len(got) != 0 {
		t.Errorf("AverageByInterval(nil) = %v, want no points", got)
	}
}

func TestAverageByIntervalSparse(t *testing.T) {
	// a single far-off sample only adds one point
	far := 75 * 365 * 24 * time.Hour
	samples := []plotting.Sample{
		{Offset: far, Value: 8},
		{Offset: 0, Value: 2},
		{Offset: far + 500*time.Millisecond, Value: 4},
	}
	want := [][2]float64{{0, 2}, {far.Seconds(), 6}}
	if diff := cmp.Diff(want, xys(t, samples, time.Second)); diff != "" {
		t.Errorf("AverageByInterval() mismatch (-want +got):\n%s", diff)
	}
}

func TestAverageByIntervalInvalidInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		if _, err := plotting.AverageByInterval([]plotting.Sample{{Value: 1}}, interval); err == nil {
			t.Errorf("AverageByInterval(%v) succeeded, want error", interval)
		}
	}
}

func normalizedTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"name", "cpu_usage", "relative_seconds"},
		[]string{"app", "0.5", "2"},
		[]string{"db", "0.1", "0"},
		[]string{"app", "0.3", "0"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestMetricPlotSeries(t *testing.T) {
	p := plotting.NewMetricPlot("cpu_usage")
	if err := p.Add("0", normalizedTable(t)); err != nil {
		t.Fatal(err)
	}
	want := []plotting.Series{
		{Label: "0/app", Samples: []plotting.Sample{{Offset: 0, Value: 0.3}, {Offset: 2 * time.Second, Value: 0.5}}},
		{Label: "0/db", Samples: []plotting.Sample{{Offset: 0, Value: 0.1}}},
	}
	if diff := cmp.Diff(want, p.Series()); diff != "" {
		t.Errorf("Series() mismatch (-want +got):\n%s", diff)
	}

	memory := plotting.NewMetricPlot("memory_usage")
	if err := memory.Add("0", normalizedTable(t)); err == nil {
		t.Error("Add() of a table without the metric succeeded")
	}
}

func TestMetricPlotAverage(t *testing.T) {
	p := plotting.NewMetricPlot("cpu_usage")
	if err := p.Add("0", normalizedTable(t)); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "cpu.png")
	if err := p.PlotAverage(out, time.Second); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("PlotAverage() did not write %s: %v", out, err)
	}
	if err := p.PlotAverage(out, 0); err == nil {
		t.Error("PlotAverage() with zero interval succeeded")
	}
}

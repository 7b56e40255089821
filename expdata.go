// Package expdata defines the core types shared by the packages that load and clean
// measurement data from repeated benchmarking experiments.
//
// Experiment data is stored in a directory tree with one directory per iteration:
//
//	<root>/<experiment>/<workload>/<variant>/<iteration index>/.../measurements_pod*.csv
//	<root>/<experiment>/<workload>/<variant>/<iteration index>/.../measurements_node*.csv
//
// The catalog package enumerates experiments and loads the measurement tables,
// the cleaning package removes outliers and normalizes observation times,
// and the plotting package renders cleaned tables.
package expdata

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Default coordinates of an iteration.
const (
	DefaultWorkload = "shaped"
	DefaultVariant  = "baseline"
)

// Well-known column names.
const (
	ObservationTime = "observation_time"
	RelativeSeconds = "relative_seconds"
	SourceName      = "name"
)

// LoadGenerator is the source name of the load generator. Its rows are not part of the workload.
const LoadGenerator = "loadgenerator"

// MetricKeys returns the known metric columns, in the order they are evaluated by the outlier filter.
func MetricKeys() []string {
	return []string{
		"wattage_kepler",
		"wattage_scaph",
		"wattage_kepler_new",
		"cpu_usage",
		"memory_usage",
		"network_usage",
	}
}

// Iteration identifies the data of one experiment run.
type Iteration struct {
	Experiment string
	Workload   string
	Variant    string
	Index      int
}

// NewIteration returns the iteration of the experiment with the default workload, variant and index.
func NewIteration(experiment string) Iteration {
	return Iteration{
		Experiment: experiment,
		Workload:   DefaultWorkload,
		Variant:    DefaultVariant,
	}
}

// Path returns the directory of the iteration below root.
func (it Iteration) Path(root string) string {
	return filepath.Join(root, it.Experiment, it.Workload, it.Variant, strconv.Itoa(it.Index))
}

func (it Iteration) String() string {
	return fmt.Sprintf("%s/%s/%s/%d", it.Experiment, it.Workload, it.Variant, it.Index)
}

// Category is a kind of measurement file.
type Category int

const (
	// Pod measurements are taken per pod.
	Pod Category = iota
	// Node measurements are taken per node.
	Node
)

// Pattern returns the file name pattern of the category.
func (c Category) Pattern() string {
	switch c {
	case Pod:
		return "measurements_pod*.csv"
	case Node:
		return "measurements_node*.csv"
	}
	panic("expdata: unknown category " + strconv.Itoa(int(c)))
}

func (c Category) String() string {
	switch c {
	case Pod:
		return "pod"
	case Node:
		return "node"
	}
	return "Category(" + strconv.Itoa(int(c)) + ")"
}

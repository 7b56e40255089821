// Package catalog finds experiments on disk and loads their measurement tables.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/relab/expdata"
	"github.com/relab/expdata/cleaning"
	"github.com/relab/expdata/logging"
	"github.com/relab/expdata/table"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// Catalog gives access to the experiments below a root directory.
// The list of experiments is read when the catalog is created and is not refreshed.
type Catalog struct {
	root        string
	experiments []string
	keys        []string
	threshold   float64
	logger      logging.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger of the catalog.
func WithLogger(logger logging.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithMetricKeys sets the metric columns that the outlier filter evaluates, in order.
func WithMetricKeys(keys ...string) Option {
	return func(c *Catalog) {
		c.keys = append([]string(nil), keys...)
	}
}

// WithThreshold sets the z-score threshold of the outlier filter.
func WithThreshold(threshold float64) Option {
	return func(c *Catalog) {
		c.threshold = threshold
	}
}

// New returns a catalog of the experiments in the root directory.
// Every subdirectory of root is an experiment.
func New(root string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		root:      root,
		keys:      expdata.MetricKeys(),
		threshold: cleaning.DefaultThreshold,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment root: %w", err)
	}
	for _, entry := range entries {
		if isDir(root, entry) {
			c.experiments = append(c.experiments, entry.Name())
		}
	}
	c.logger.Debugf("found %d experiments in %s", len(c.experiments), root)
	return c, nil
}

// isDir reports whether the entry is a directory, following symbolic links.
func isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}

// Root returns the root directory of the catalog.
func (c *Catalog) Root() string {
	return c.root
}

// Experiments returns the names of the experiments, in lexical order.
func (c *Catalog) Experiments() []string {
	return append([]string(nil), c.experiments...)
}

// Iteration returns the iteration with the given coordinates.
// An empty workload or variant is replaced by the default.
func (c *Catalog) Iteration(experiment, workload, variant string, index int) expdata.Iteration {
	if workload == "" {
		workload = expdata.DefaultWorkload
	}
	if variant == "" {
		variant = expdata.DefaultVariant
	}
	return expdata.Iteration{
		Experiment: experiment,
		Workload:   workload,
		Variant:    variant,
		Index:      index,
	}
}

// Iterations returns the iterations of the experiment that exist on disk, sorted by
// workload, variant and index. Directories whose names are not iteration indices are ignored.
func (c *Catalog) Iterations(experiment string) ([]expdata.Iteration, error) {
	base := filepath.Join(c.root, experiment)
	workloads, err := subdirs(base)
	if err != nil {
		return nil, err
	}
	var iterations []expdata.Iteration
	for _, workload := range workloads {
		variants, err := subdirs(filepath.Join(base, workload))
		if err != nil {
			return nil, err
		}
		for _, variant := range variants {
			indices, err := subdirs(filepath.Join(base, workload, variant))
			if err != nil {
				return nil, err
			}
			for _, index := range c.indices(filepath.Join(base, workload, variant), indices) {
				iterations = append(iterations, expdata.Iteration{
					Experiment: experiment,
					Workload:   workload,
					Variant:    variant,
					Index:      index,
				})
			}
		}
	}
	return iterations, nil
}

// VariantIterations returns the iterations of one workload and variant of the experiment
// that exist on disk, sorted by index. An empty workload or variant is replaced by the default.
func (c *Catalog) VariantIterations(experiment, workload, variant string) ([]expdata.Iteration, error) {
	want := c.Iteration(experiment, workload, variant, 0)
	dir := filepath.Join(c.root, experiment, want.Workload, want.Variant)
	indices, err := subdirs(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var iterations []expdata.Iteration
	for _, index := range c.indices(dir, indices) {
		it := want
		it.Index = index
		iterations = append(iterations, it)
	}
	return iterations, nil
}

// indices returns the sorted iteration indices among the directory names below dir.
func (c *Catalog) indices(dir string, names []string) []int {
	var found []int
	for _, name := range names {
		index, err := strconv.Atoi(name)
		if err != nil || index < 0 || strconv.Itoa(index) != name {
			c.logger.Debugf("ignoring %s: not an iteration index", filepath.Join(dir, name))
			continue
		}
		found = append(found, index)
	}
	slices.Sort(found)
	return found
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if isDir(dir, entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// LoadPodMeasurements loads the pod measurements of the iteration.
// If clean is true, the rows of the load generator are removed.
// If dropOutliers is true, the outlier filter is applied before the observation times are normalized.
func (c *Catalog) LoadPodMeasurements(it expdata.Iteration, clean, dropOutliers bool) (*table.Table, error) {
	return c.Load(it, expdata.Pod, LoadOptions{KeepLoadGenerator: !clean, DropOutliers: dropOutliers})
}

// LoadNodeMeasurements loads the node measurements of the iteration.
// If dropOutliers is true, the outlier filter is applied before the observation times are normalized.
func (c *Catalog) LoadNodeMeasurements(it expdata.Iteration, dropOutliers bool) (*table.Table, error) {
	return c.Load(it, expdata.Node, LoadOptions{DropOutliers: dropOutliers})
}

// LoadOptions are the options of Load and LoadAll. The zero value removes the
// load generator rows from pod measurements and keeps outliers.
type LoadOptions struct {
	KeepLoadGenerator bool
	DropOutliers      bool

	// KeepScores keeps the z-score columns of the outlier filter. Only used with DropOutliers.
	KeepScores bool
}

// Load loads the measurements of the category with the given options.
// The load generator rows are only ever removed from pod measurements.
func (c *Catalog) Load(it expdata.Iteration, category expdata.Category, opts LoadOptions) (*table.Table, error) {
	tbl, err := c.read(it, category)
	if err != nil {
		return nil, err
	}
	if category == expdata.Pod && !opts.KeepLoadGenerator {
		tbl, err = excludeLoadGenerator(tbl)
		if err != nil {
			return nil, err
		}
	}
	if opts.DropOutliers {
		filter := cleaning.OutlierFilter{
			Threshold:  c.threshold,
			Keys:       c.keys,
			Logger:     c.logger,
			KeepScores: opts.KeepScores,
		}
		tbl, _, err = filter.Apply(tbl)
		if err != nil {
			return nil, err
		}
	}
	return cleaning.Normalize(tbl)
}

// Loaded is a table together with the iteration it belongs to.
type Loaded struct {
	Iteration expdata.Iteration
	Table     *table.Table
}

// LoadAll loads the measurements of every iteration of the experiment, like LoadIterations.
func (c *Catalog) LoadAll(experiment string, category expdata.Category, opts LoadOptions) ([]Loaded, error) {
	iterations, err := c.Iterations(experiment)
	if err != nil {
		return nil, err
	}
	return c.LoadIterations(iterations, category, opts)
}

// LoadIterations loads the measurements of the given iterations, in order.
// Iterations without measurements are skipped; all other failures are combined into the returned error,
// in which case no tables are returned.
func (c *Catalog) LoadIterations(iterations []expdata.Iteration, category expdata.Category, opts LoadOptions) ([]Loaded, error) {
	var (
		loaded []Loaded
		errs   error
	)
	for _, it := range iterations {
		tbl, err := c.Load(it, category, opts)
		if errors.Is(err, expdata.ErrNotFound) {
			c.logger.Warnf("skipping %s: %v", it, err)
			continue
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", it, err))
			continue
		}
		loaded = append(loaded, Loaded{Iteration: it, Table: tbl})
	}
	if errs != nil {
		return nil, errs
	}
	return loaded, nil
}

func (c *Catalog) read(it expdata.Iteration, category expdata.Category) (*table.Table, error) {
	path, err := Locate(it.Path(c.root), category)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("reading %s", path)
	return table.Read(path)
}

// excludeLoadGenerator removes the rows of the load generator.
// Tables without a name column are returned unchanged.
func excludeLoadGenerator(tbl *table.Table) (*table.Table, error) {
	if !tbl.Has(expdata.SourceName) {
		return tbl, nil
	}
	names, err := tbl.Strings(expdata.SourceName)
	if err != nil {
		return nil, err
	}
	return tbl.Filter(func(i int) bool {
		return names[i] != expdata.LoadGenerator
	}), nil
}

package cli

import (
	"github.com/relab/expdata"
	"github.com/relab/expdata/catalog"
	"github.com/relab/expdata/table"
	"github.com/spf13/cobra"
)

// selection holds the flags that choose which measurements to load.
type selection struct {
	workload     string
	variant      string
	iteration    int
	node         bool
	noClean      bool
	dropOutliers bool
	keepScores   bool
}

func (s *selection) addFlags(cmd *cobra.Command, withIteration bool) {
	flags := cmd.Flags()
	flags.StringVar(&s.workload, "workload", expdata.DefaultWorkload, "workload of the iteration")
	flags.StringVar(&s.variant, "variant", expdata.DefaultVariant, "variant of the iteration")
	if withIteration {
		flags.IntVar(&s.iteration, "iteration", 0, "index of the iteration")
	}
	flags.BoolVar(&s.node, "node", false, "load node measurements instead of pod measurements")
	flags.BoolVar(&s.noClean, "no-clean", false, "keep the load generator rows of pod measurements")
	flags.BoolVar(&s.dropOutliers, "drop-outliers", false, "drop rows with outlier metric values")
	flags.BoolVar(&s.keepScores, "keep-scores", false, "keep the z-score columns of --drop-outliers")
}

func (s *selection) category() expdata.Category {
	if s.node {
		return expdata.Node
	}
	return expdata.Pod
}

func (s *selection) options() catalog.LoadOptions {
	return catalog.LoadOptions{
		KeepLoadGenerator: s.noClean,
		DropOutliers:      s.dropOutliers,
		KeepScores:        s.keepScores,
	}
}

// load loads the selected iteration of the experiment.
func (s *selection) load(c *catalog.Catalog, experiment string) (*table.Table, error) {
	it := c.Iteration(experiment, s.workload, s.variant, s.iteration)
	return c.Load(it, s.category(), s.options())
}

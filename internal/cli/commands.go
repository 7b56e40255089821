package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/relab/expdata"
	"github.com/relab/expdata/cleaning"
	"github.com/relab/expdata/plotting"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// newTable returns a borderless table with the given column headers.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetBorder(false)
	tw.SetTablePadding("  ")
	tw.SetNoWhiteSpace(true)
	return tw
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the experiments.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			for _, name := range c.Experiments() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newIterationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "iterations <experiment>",
		Short: "List the iterations of an experiment.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			iterations, err := c.Iterations(args[0])
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "workload", "variant", "iteration")
			for _, it := range iterations {
				tw.Append([]string{it.Workload, it.Variant, strconv.Itoa(it.Index)})
			}
			tw.Render()
			return nil
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	var (
		sel    selection
		output string
	)
	cmd := &cobra.Command{
		Use:   "load <experiment>",
		Short: "Load and clean the measurements of one iteration.",
		Long: `The load command loads the pod (or node, with --node) measurements of one iteration.
The rows of the load generator are removed from pod measurements unless --no-clean is given,
outliers are removed if --drop-outliers is given, and a relative_seconds column is added.
The cleaned table is written to --output as CSV, if given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			tbl, err := sel.load(c, args[0])
			if err != nil {
				return err
			}
			length, err := cleaning.ExperimentLength(tbl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "file:   %s\nrows:   %d\nlength: %v\n", tbl.Source(), tbl.Len(), time.Duration(length)*time.Second)
			if output == "" {
				return nil
			}
			if err := tbl.Write(output); err != nil {
				return err
			}
			a.logger.Infof("wrote %d rows to %s", tbl.Len(), output)
			return nil
		},
	}
	sel.addFlags(cmd, true)
	cmd.Flags().StringVar(&output, "output", "", "write the cleaned table to this CSV file")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var sel selection
	cmd := &cobra.Command{
		Use:   "describe <experiment>",
		Short: "Print statistics of the metrics of one iteration.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			tbl, err := sel.load(c, args[0])
			if err != nil {
				return err
			}
			summaries, err := cleaning.Describe(tbl, a.cfg.MetricKeys)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "metric", "count", "missing", "mean", "stddev", "min", "max")
			for _, s := range summaries {
				tw.Append([]string{
					s.Key,
					strconv.Itoa(s.Count),
					strconv.Itoa(s.Missing),
					fmt.Sprintf("%.4g", s.Mean),
					fmt.Sprintf("%.4g", s.StdDev),
					fmt.Sprintf("%.4g", s.Min),
					fmt.Sprintf("%.4g", s.Max),
				})
			}
			tw.Render()
			return nil
		},
	}
	sel.addFlags(cmd, true)
	return cmd
}

func newPlotCmd(a *app) *cobra.Command {
	var (
		sel      selection
		metric   string
		interval time.Duration
		out      string
	)
	cmd := &cobra.Command{
		Use:   "plot <experiment>",
		Short: "Plot a metric of all iterations of a workload and variant.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			iterations, err := c.VariantIterations(args[0], sel.workload, sel.variant)
			if err != nil {
				return err
			}
			loaded, err := c.LoadIterations(iterations, sel.category(), sel.options())
			if err != nil {
				return err
			}
			p := plotting.NewMetricPlot(metric)
			for _, l := range loaded {
				if err := p.Add(fmt.Sprint(l.Iteration.Index), l.Table); err != nil {
					return fmt.Errorf("%s: %w", l.Iteration, err)
				}
			}
			n := len(loaded)
			if n == 0 {
				return fmt.Errorf("no %s measurements for %s/%s/%s: %w", sel.category(), args[0], sel.workload, sel.variant, expdata.ErrNotFound)
			}
			if err := p.PlotAverage(out, interval); err != nil {
				return err
			}
			a.logger.Infof("plotted %d iterations to %s", n, out)
			return nil
		},
	}
	sel.addFlags(cmd, false)
	cmd.Flags().StringVar(&metric, "metric", "cpu_usage", "the metric column to plot")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "the time interval to average over")
	cmd.Flags().StringVarP(&out, "out", "o", "plot.png", "the file to save the plot to")
	return cmd
}

// Plot renders one metric of a single measurement file, without an experiment directory tree.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/relab/expdata/cleaning"
	"github.com/relab/expdata/plotting"
	"github.com/relab/expdata/table"
	flag "github.com/spf13/pflag"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] measurements.csv output\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "The output format is chosen by the extension of the output file.\n\n")
	fmt.Fprintf(os.Stderr, "OPTIONS:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	metric := flag.String("metric", "cpu_usage", "the metric column to plot")
	interval := flag.Duration("interval", time.Second, "the time interval to average over")
	dropOutliers := flag.Bool("drop-outliers", false, "drop rows with outlier metric values")
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	tbl, err := table.Read(flag.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}
	if *dropOutliers {
		tbl, _, err = cleaning.OutlierFilter{Keys: []string{*metric}}.Apply(tbl)
		if err != nil {
			log.Fatalln(err)
		}
	}
	tbl, err = cleaning.Normalize(tbl)
	if err != nil {
		log.Fatalln(err)
	}

	p := plotting.NewMetricPlot(*metric)
	if err := p.Add(filepath.Base(flag.Arg(0)), tbl); err != nil {
		log.Fatalln(err)
	}
	if err := p.PlotAverage(flag.Arg(1), *interval); err != nil {
		log.Fatalln(err)
	}
}

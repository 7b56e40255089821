// Package cli implements the expdata command line tool.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/relab/expdata/catalog"
	"github.com/relab/expdata/internal/config"
	"github.com/relab/expdata/internal/profiling"
	"github.com/relab/expdata/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	cfg    *config.Config
	logger logging.Logger
}

func (a *app) catalog() (*catalog.Catalog, error) {
	return catalog.New(a.cfg.Root,
		catalog.WithLogger(a.logger),
		catalog.WithThreshold(a.cfg.Threshold),
		catalog.WithMetricKeys(a.cfg.MetricKeys...),
	)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand returns the root command with all subcommands.
func NewRootCommand() *cobra.Command {
	var (
		a             app
		cfgFile       string
		stopProfilers func() error
	)

	rootCmd := &cobra.Command{
		Use:   "expdata",
		Short: "A command-line utility for loading and cleaning experiment measurements.",
		Long: `expdata loads the measurements of benchmarking experiments.

Experiments are stored below a root directory (see --root), with one directory per iteration:

  <root>/<experiment>/<workload>/<variant>/<iteration>/.../measurements_pod*.csv
  <root>/<experiment>/<workload>/<variant>/<iteration>/.../measurements_node*.csv

Use 'expdata list' to see the experiments, and 'expdata load' to load and clean
the measurements of one iteration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := initConfig(cfgFile); err != nil {
				return err
			}
			a.cfg, err = config.NewViper()
			if err != nil {
				return err
			}
			if err := a.cfg.ApplyLogLevels(); err != nil {
				return err
			}
			a.logger = logging.New("expdata")
			if f := viper.ConfigFileUsed(); f != "" {
				a.logger.Debugf("using config file %s", f)
			}
			stopProfilers, err = profiling.StartProfilers(a.cfg.CPUProfile, a.cfg.MemProfile, a.cfg.Trace, a.cfg.FgprofProfile)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if stopProfilers == nil {
				return nil
			}
			return stopProfilers()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.expdata.yaml)")
	flags.String("root", "data", "the directory that contains the experiments")
	flags.String("log-level", "info", "sets the log level (debug, info, warn, error)")
	flags.StringSlice("log-pkgs", []string{}, "set the log level on a per-package basis")
	flags.Float64("z-threshold", 3, "z-score above which a row is an outlier")
	flags.StringSlice("metric-keys", nil, "metric columns to check for outliers, in order (default: all known metrics)")
	flags.String("cpu-profile", "", "write a cpu profile to this file")
	flags.String("mem-profile", "", "write a memory profile to this file")
	flags.String("trace", "", "write an execution trace to this file")
	flags.String("fgprof-profile", "", "write an fgprof profile to this file")
	cobra.CheckErr(viper.BindPFlags(flags))

	rootCmd.AddCommand(
		newListCmd(&a),
		newIterationsCmd(&a),
		newLoadCmd(&a),
		newDescribeCmd(&a),
		newPlotCmd(&a),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		// Search config in home directory with name ".expdata" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".expdata")
	}

	viper.SetEnvPrefix("expdata")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (cfgFile != "" || !errors.As(err, &notFound)) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

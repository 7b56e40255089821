// Package config holds the settings of the command line tool.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/relab/expdata"
	"github.com/relab/expdata/cleaning"
	"github.com/relab/expdata/logging"
	"github.com/spf13/viper"
)

// Config is the configuration shared by all commands.
type Config struct {
	Root        string
	LogLevel    string
	LogPackages map[string]string
	Threshold   float64
	MetricKeys  []string

	CPUProfile    string
	MemProfile    string
	Trace         string
	FgprofProfile string
}

// NewViper returns the configuration read from flags, environment and config file by viper.
func NewViper() (*Config, error) {
	cfg := &Config{
		Root:          viper.GetString("root"),
		LogLevel:      viper.GetString("log-level"),
		LogPackages:   make(map[string]string),
		Threshold:     viper.GetFloat64("z-threshold"),
		MetricKeys:    viper.GetStringSlice("metric-keys"),
		CPUProfile:    viper.GetString("cpu-profile"),
		MemProfile:    viper.GetString("mem-profile"),
		Trace:         viper.GetString("trace"),
		FgprofProfile: viper.GetString("fgprof-profile"),
	}

	if cfg.Root == "" {
		cfg.Root = "data"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	for _, packageLevel := range viper.GetStringSlice("log-pkgs") {
		parts := strings.Split(packageLevel, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("log-pkgs must be a comma-separated list of package:level strings, got %q", packageLevel)
		}
		if _, err := logging.ParseLevel(parts[1]); err != nil {
			return nil, err
		}
		cfg.LogPackages[parts[0]] = parts[1]
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = cleaning.DefaultThreshold
	}
	if cfg.Threshold < 0 {
		return nil, fmt.Errorf("z-threshold must be positive, got %v", cfg.Threshold)
	}
	if len(cfg.MetricKeys) == 0 {
		cfg.MetricKeys = expdata.MetricKeys()
	}

	var err error
	cfg.Root, err = filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}
	return cfg, nil
}

// ApplyLogLevels sets the global and per-package log levels.
func (cfg *Config) ApplyLogLevels() error {
	if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	for pkg, level := range cfg.LogPackages {
		if err := logging.SetPackageLogLevel(pkg, level); err != nil {
			return err
		}
	}
	return nil
}

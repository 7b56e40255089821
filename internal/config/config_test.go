package config_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/relab/expdata"
	"github.com/relab/expdata/internal/config"
	"github.com/spf13/viper"
)

func TestNewViperDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := config.NewViper()
	if err != nil {
		t.Fatal(err)
	}
	root, _ := filepath.Abs("data")
	want := &config.Config{
		Root:        root,
		LogLevel:    "info",
		LogPackages: map[string]string{},
		Threshold:   3,
		MetricKeys:  expdata.MetricKeys(),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("NewViper() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	viper.Set("root", dir)
	viper.Set("log-level", "debug")
	viper.Set("log-pkgs", []string{"catalog:warn"})
	viper.Set("z-threshold", 2.5)
	viper.Set("metric-keys", []string{"cpu_usage"})

	cfg, err := config.NewViper()
	if err != nil {
		t.Fatal(err)
	}
	want := &config.Config{
		Root:        dir,
		LogLevel:    "debug",
		LogPackages: map[string]string{"catalog": "warn"},
		Threshold:   2.5,
		MetricKeys:  []string{"cpu_usage"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("NewViper() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewViperErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{name: "LogLevel_____", key: "log-level", value: "verbose"},
		{name: "LogPkgsFormat", key: "log-pkgs", value: []string{"catalog"}},
		{name: "LogPkgsLevel_", key: "log-pkgs", value: []string{"catalog:loud"}},
		{name: "Threshold____", key: "z-threshold", value: -1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			viper.Set(tt.key, tt.value)
			if _, err := config.NewViper(); err == nil {
				t.Errorf("NewViper() with %s=%v succeeded", tt.key, tt.value)
			}
		})
	}
}

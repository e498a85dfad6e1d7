package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the dotbench configuration file
// (~/.config/dotbench/config.yaml). Numeric fields are pointers so "not set"
// is distinguishable from zero values.
type Config struct {
	Size       *int64   `yaml:"size"`
	Iterations *int64   `yaml:"iterations"`
	Warmup     *int64   `yaml:"warmup"`
	Seed       *int64   `yaml:"seed"`
	Tolerance  *float64 `yaml:"tolerance"`
	JSON       *bool    `yaml:"json"`
	LogLevel   string   `yaml:"log_level"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dotbench", "config.yaml")
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing explicit
// file is.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyRunConfig applies config file defaults to run command variables when
// the corresponding CLI flag was not explicitly set.
func applyRunConfig(c *cli.Command, cfg Config,
	size, iterations, warmup, seed *int64, tolerance *float64, jsonOut *bool, logLevel *string,
) {
	if cfg.Size != nil && !c.IsSet("size") {
		*size = *cfg.Size
	}
	if cfg.Iterations != nil && !c.IsSet("iterations") {
		*iterations = *cfg.Iterations
	}
	if cfg.Warmup != nil && !c.IsSet("warmup") {
		*warmup = *cfg.Warmup
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		*seed = *cfg.Seed
	}
	if cfg.Tolerance != nil && !c.IsSet("tolerance") {
		*tolerance = *cfg.Tolerance
	}
	if cfg.JSON != nil && !c.IsSet("json") {
		*jsonOut = *cfg.JSON
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		*logLevel = cfg.LogLevel
	}
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"

	taskrunner "github.com/rinihandini/Multithreading"
)

// TomlDuration is a time.Duration that decodes from TOML strings such as
// "50ms" or "1m30s".
type TomlDuration time.Duration

func (d *TomlDuration) UnmarshalText(text []byte) error {
	stdDuration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TomlDuration(stdDuration)
	return nil
}

// WorkloadConfig describes one synthetic workload: how many batches to
// submit, how each batch is shaped, and how the runner is bounded.
type WorkloadConfig struct {
	MaxConcurrency int          `toml:"max_concurrency"`
	Batches        int          `toml:"batches"`
	TasksPerBatch  int          `toml:"tasks_per_batch"`
	MinTaskTime    TomlDuration `toml:"min_task_time"`
	MaxTaskTime    TomlDuration `toml:"max_task_time"`
	FailureRate    float64      `toml:"failure_rate"`
}

// DefaultWorkloadConfig returns the workload used when no config file is
// given.
func DefaultWorkloadConfig() *WorkloadConfig {
	cfg := &WorkloadConfig{FailureRate: 0.1}
	cfg.normalize()
	return cfg
}

// LoadWorkloadConfig reads, normalizes, and validates a TOML workload config.
func LoadWorkloadConfig(path string) (*WorkloadConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("workload config path is empty")
	}
	if filepath.Ext(path) != ".toml" {
		return nil, errors.Errorf("workload config must be a .toml file: %s", path)
	}

	var cfg WorkloadConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Annotate(err, "decode workload config failed")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys in workload config: %v", undecoded)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *WorkloadConfig) normalize() {
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = runtime.GOMAXPROCS(0)
	}
	if c.Batches == 0 {
		c.Batches = 3
	}
	if c.TasksPerBatch == 0 {
		c.TasksPerBatch = 16
	}
	if c.MinTaskTime == 0 {
		c.MinTaskTime = TomlDuration(5 * time.Millisecond)
	}
	if c.MaxTaskTime == 0 {
		c.MaxTaskTime = TomlDuration(50 * time.Millisecond)
	}
}

func (c *WorkloadConfig) validate() error {
	runnerCfg := taskrunner.Config{MaxConcurrency: c.MaxConcurrency}
	if err := runnerCfg.Validate(); err != nil {
		return errors.Annotatef(err, "max_concurrency=%d", c.MaxConcurrency)
	}
	if c.Batches < 1 {
		return errors.Errorf("batches must be at least one: %d", c.Batches)
	}
	if c.TasksPerBatch < 0 {
		return errors.Errorf("tasks_per_batch must be >= 0: %d", c.TasksPerBatch)
	}
	if c.MinTaskTime < 0 {
		return errors.Errorf("min_task_time must be >= 0: %v", time.Duration(c.MinTaskTime))
	}
	if c.MaxTaskTime < c.MinTaskTime {
		return errors.Errorf("max_task_time %v is less than min_task_time %v",
			time.Duration(c.MaxTaskTime), time.Duration(c.MinTaskTime))
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return errors.Errorf("failure_rate must be within [0, 1]: %v", c.FailureRate)
	}
	return nil
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWorkloadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(t *testing.T, name, body string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write file failed: %v", err)
		}
		return path
	}

	t.Run("empty path", func(t *testing.T) {
		if _, err := LoadWorkloadConfig(""); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("extension check", func(t *testing.T) {
		path := write(t, "workload.txt", "batches = 1")
		if _, err := LoadWorkloadConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := write(t, "unknown.toml", "batches = 1\nbatch_size = 8")
		if _, err := LoadWorkloadConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("testdata sample", func(t *testing.T) {
		cfg, err := LoadWorkloadConfig(filepath.Join("testdata", "workload.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxConcurrency != 4 || cfg.Batches != 3 || cfg.TasksPerBatch != 16 {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if time.Duration(cfg.MinTaskTime) != 5*time.Millisecond {
			t.Fatalf("unexpected min_task_time: %v", time.Duration(cfg.MinTaskTime))
		}
		if time.Duration(cfg.MaxTaskTime) != 50*time.Millisecond {
			t.Fatalf("unexpected max_task_time: %v", time.Duration(cfg.MaxTaskTime))
		}
		if cfg.FailureRate != 0.1 {
			t.Fatalf("unexpected failure_rate: %v", cfg.FailureRate)
		}
	})

	t.Run("defaults fill empty keys", func(t *testing.T) {
		path := write(t, "sparse.toml", "batches = 2")
		cfg, err := LoadWorkloadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Batches != 2 {
			t.Fatalf("unexpected batches: %d", cfg.Batches)
		}
		if cfg.MaxConcurrency < 1 || cfg.TasksPerBatch != 16 {
			t.Fatalf("defaults not applied: %+v", cfg)
		}
	})

	t.Run("negative concurrency", func(t *testing.T) {
		path := write(t, "negconc.toml", "max_concurrency = -2")
		if _, err := LoadWorkloadConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad duration order", func(t *testing.T) {
		path := write(t, "durations.toml", "min_task_time = \"100ms\"\nmax_task_time = \"10ms\"")
		if _, err := LoadWorkloadConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("failure rate range", func(t *testing.T) {
		path := write(t, "failrate.toml", "failure_rate = 1.5")
		if _, err := LoadWorkloadConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestResolveConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := resolveConfig("", 2, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxConcurrency != 2 || cfg.Batches != 7 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	if _, err := resolveConfig("", -1, 0); err == nil {
		t.Fatalf("expected error for negative concurrency override")
	}
}

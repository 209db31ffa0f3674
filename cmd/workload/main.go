// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

// Command workload drives a shared task runner with synthetic batches. It is
// a demo and load-generation tool: each batch submits a configurable number
// of tasks with randomized durations and an optional induced failure rate,
// all bounded by one shared concurrency limit.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	taskrunner "github.com/rinihandini/Multithreading"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a TOML workload config (optional)")
		concurrency = flag.Int("concurrency", 0, "override max_concurrency from the config")
		batches     = flag.Int("batches", 0, "override batches from the config")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address (optional)")
	)
	flag.Parse()

	cfg, err := resolveConfig(*configPath, *concurrency, *batches)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid workload config: %v\n", err)
		os.Exit(2)
	}

	if *metricsAddr != "" {
		registry := prometheus.NewRegistry()
		taskrunner.InitMetrics(registry)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runWorkload(ctx, cfg); err != nil {
		log.Error("workload failed", zap.Error(err))
		os.Exit(1)
	}
}

func resolveConfig(path string, concurrency, batches int) (*WorkloadConfig, error) {
	var cfg *WorkloadConfig
	if path == "" {
		cfg = DefaultWorkloadConfig()
	} else {
		loaded, err := LoadWorkloadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if concurrency != 0 {
		cfg.MaxConcurrency = concurrency
	}
	if batches != 0 {
		cfg.Batches = batches
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWorkload(ctx context.Context, cfg *WorkloadConfig) error {
	runner, err := taskrunner.New(taskrunner.Config{MaxConcurrency: cfg.MaxConcurrency})
	if err != nil {
		return errors.Annotate(err, "create runner failed")
	}
	defer runner.Close()

	log.Info("workload starting",
		zap.Int("batches", cfg.Batches),
		zap.Int("tasksPerBatch", cfg.TasksPerBatch),
		zap.Int("maxConcurrency", cfg.MaxConcurrency),
		zap.Float64("failureRate", cfg.FailureRate))

	start := time.Now()
	var totalOK, totalFailed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for b := range cfg.Batches {
		g.Go(func() error {
			return runBatch(gctx, runner, cfg, b, &totalOK, &totalFailed)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("workload finished",
		zap.Int64("succeeded", totalOK.Load()),
		zap.Int64("failed", totalFailed.Load()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// runBatch submits one batch and waits for its completion notification.
// Induced task failures are part of the workload and are only counted; an
// error is returned only when the batch cannot be submitted or the context
// ends before the notification arrives.
func runBatch(
	ctx context.Context,
	runner *taskrunner.Runner,
	cfg *WorkloadConfig,
	number int,
	totalOK, totalFailed *atomic.Int64,
) error {
	start := time.Now()
	done := make(chan struct{})
	var failed int

	err := runner.Run(ctx, buildTasks(cfg), func(outcomes []taskrunner.Outcome) {
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
			}
		}
		totalOK.Add(int64(len(outcomes) - failed))
		totalFailed.Add(int64(failed))
		close(done)
	})
	if err != nil {
		return errors.Annotatef(err, "submit batch %d failed", number)
	}

	// Even when ctx ends, the notification still arrives: unstarted tasks
	// complete with the context error.
	<-done
	log.Info("batch finished",
		zap.Int("number", number),
		zap.Int("tasks", cfg.TasksPerBatch),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	return ctx.Err()
}

func buildTasks(cfg *WorkloadConfig) []taskrunner.Task {
	tasks := make([]taskrunner.Task, cfg.TasksPerBatch)
	for i := range tasks {
		d := randomDuration(time.Duration(cfg.MinTaskTime), time.Duration(cfg.MaxTaskTime))
		fail := rand.Float64() < cfg.FailureRate
		tasks[i] = func(ctx context.Context) error {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return ctx.Err()
			}
			if fail {
				return errors.Errorf("induced failure in task %d", i)
			}
			return nil
		}
	}
	return tasks
}

func randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + rand.N(max-min)
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

var (
	// RunningTasks is the number of tasks currently holding a permit.
	RunningTasks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "taskrunner",
			Subsystem: "runner",
			Name:      "running_tasks",
			Help:      "The number of tasks currently executing.",
		})
	// StartedTasks counts tasks that acquired a permit and began executing.
	StartedTasks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "taskrunner",
			Subsystem: "runner",
			Name:      "started_tasks",
			Help:      "Total count of tasks that acquired a permit and started.",
		})
	// CompletedTasks counts finished tasks, partitioned by result.
	CompletedTasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskrunner",
			Subsystem: "runner",
			Name:      "completed_tasks",
			Help:      "Total count of finished tasks by result.",
		}, []string{"result"})
	// BatchDuration measures batch latency from submission to notification.
	BatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "taskrunner",
			Subsystem: "runner",
			Name:      "batch_duration",
			Help:      "Seconds from batch submission to completion notification.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 18),
		})
	// PermitWaitDuration measures how long task starts were held back by the
	// concurrency bound.
	PermitWaitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "taskrunner",
			Subsystem: "runner",
			Name:      "permit_wait_duration",
			Help:      "Seconds a task submission waited for a free permit.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
		})
)

// InitMetrics registers all runner metrics with the given registry.
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(RunningTasks)
	registry.MustRegister(StartedTasks)
	registry.MustRegister(CompletedTasks)
	registry.MustRegister(BatchDuration)
	registry.MustRegister(PermitWaitDuration)
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package otrunner

import (
	"context"
	"fmt"

	taskrunner "github.com/rinihandini/Multithreading"
)

// InstrumentedTask combines tracing, metrics, and logging for a task into a
// single wrapper. This provides a convenient way to apply all instrumentation
// at once.
func InstrumentedTask(operationName string, task taskrunner.Task) taskrunner.Task {
	// Apply wrappers inside-out:
	// 1. First add logging
	loggedTask := LoggedTask(operationName, task)

	// 2. Then add metrics
	metricsTask := MetricsTask(operationName, loggedTask)

	// 3. Finally add tracing
	return TracedTask(operationName, metricsTask)
}

// InstrumentedRun submits a batch whose tasks carry logging, metrics, and
// tracing, under a batch-level span that ends at the join barrier.
//
// Example:
//
//	err := otrunner.InstrumentedRun(ctx, runner, "refresh-caches", tasks,
//		func(outcomes []taskrunner.Outcome) {
//			// inspect outcomes
//		})
func InstrumentedRun(
	ctx context.Context,
	runner *taskrunner.Runner,
	operationName string,
	tasks []taskrunner.Task,
	onComplete func([]taskrunner.Outcome),
) error {
	if onComplete == nil {
		panic("completion callback must be non-nil")
	}
	wrapped := make([]taskrunner.Task, len(tasks))
	for i, task := range tasks {
		if task == nil {
			// Leave the nil in place so the runner's own misuse check fires.
			continue
		}
		name := fmt.Sprintf("%s/%d", operationName, i)
		wrapped[i] = MetricsTask(name, LoggedTask(name, task))
	}
	return TracedRun(ctx, runner, operationName, wrapped, LoggedCompletion(operationName, onComplete))
}

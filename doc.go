// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

// Package taskrunner executes batches of independent tasks with a fixed upper
// bound on how many run at the same time, and reports each batch's per-task
// outcomes through a completion callback once every task has finished. It
// replaces the pattern of pushing work onto shared global queues with an
// explicitly constructed, caller-owned [Runner], so that unrelated call sites
// never couple through hidden process-wide scheduler state.
//
// Since tasks require resources to execute, and those resources are limited,
// the runner models them as a pool of permits: a task must hold a permit while
// it runs, and a task that cannot get one waits its turn. Permits are granted
// in arrival order, so no submission can be starved by later arrivals.
//
// Submitting a batch never blocks the caller on task execution. [Runner.Run]
// returns once the batch is handed off; completion is observed only through
// the callback, which the runner invokes on a single dedicated goroutine.
// Completion handling therefore never races with task execution, and
// callbacks for different batches never run concurrently with each other.
package taskrunner

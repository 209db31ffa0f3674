// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

import (
	"context"
)

// Run executes tasks with at most maxConcurrency running at once and invokes
// onComplete with one [Outcome] per task when all of them have finished. It
// is the one-shot form of [Runner.Run]: a private runner is created for the
// batch and released after the completion callback returns.
//
// Run returns as soon as the batch is submitted, without waiting for any task
// to start or finish. It returns [ErrConcurrencyLimit] when maxConcurrency is
// less than one, and panics if onComplete or any task is nil.
func Run(ctx context.Context, tasks []Task, maxConcurrency int, onComplete func([]Outcome)) error {
	if onComplete == nil {
		panic("completion callback must be non-nil")
	}
	for _, task := range tasks {
		if task == nil {
			panic("task function must be non-nil")
		}
	}
	r, err := New(Config{MaxConcurrency: maxConcurrency})
	if err != nil {
		return err
	}
	return r.Run(ctx, tasks, func(outcomes []Outcome) {
		onComplete(outcomes)
		go r.Close()
	})
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// batch tracks one Run call from submission to notification. It is created
// when the batch is submitted, mutated only by task-completion events, and
// discarded after the completion callback returns. The remaining counter is
// the batch's lifecycle: positive while open, zero once every task has
// reported, at which point exactly one goroutine observes the transition and
// forwards the batch for notification.
type batch struct {
	id         string
	tasks      []Task
	outcomes   []Outcome
	remaining  atomic.Int64
	onComplete func([]Outcome)
	start      time.Time
}

func newBatch(tasks []Task, onComplete func([]Outcome)) *batch {
	b := &batch{
		id:         uuid.NewString(),
		tasks:      slices.Clone(tasks),
		outcomes:   make([]Outcome, len(tasks)),
		onComplete: onComplete,
		start:      time.Now(),
	}
	b.remaining.Store(int64(len(tasks)))
	return b
}

// finish records task i's completion. Only the goroutine that ran (or
// skipped) task i writes slot i, so the outcome slice needs no lock. Returns
// true for exactly one caller: the one that completed the batch.
func (b *batch) finish(i int, err error, elapsed time.Duration) bool {
	b.outcomes[i] = Outcome{Index: i, Err: err, Elapsed: elapsed}
	n := b.remaining.Add(-1)
	if n < 0 {
		panic("task finished more than once")
	}
	return n == 0
}

func (b *batch) failed() int {
	n := 0
	for _, o := range b.outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

// Package schedsim is a discrete-event model of a bounded-concurrency task
// runner. Tests use it to compute the ideal wall-clock profile of a batch:
// what a real runner would observe if permits were granted instantly and task
// durations were exact. A real run can only add overhead, so the model's
// makespan is a lower bound on elapsed time.
package schedsim

import (
	"cmp"
	"time"

	"github.com/addrummond/heap"
)

// Plan describes one simulated batch: the permit count and the execution time
// of each task in submission order.
type Plan struct {
	MaxConcurrency int
	TaskDurations  []time.Duration
}

// Result is what the model observed over one simulated batch.
type Result struct {
	// Makespan is the virtual time from batch start to the last task finish.
	// Zero for an empty plan.
	Makespan time.Duration
	// PeakConcurrency is the highest number of simultaneously running tasks.
	PeakConcurrency int
	// FinishOrder lists task indexes in virtual completion order. Ties finish
	// in submission order.
	FinishOrder []int
}

// Estimate runs the model. Tasks start in submission order whenever a permit
// is free; each runs for exactly its planned duration; a finishing task's
// permit passes immediately to the next unstarted task.
//
// Panics if the plan's MaxConcurrency is less than one.
func Estimate(p Plan) Result {
	if p.MaxConcurrency < 1 {
		panic("schedsim: max concurrency must be at least one")
	}

	var events heap.Heap[finishEvent, heap.Min]
	var now time.Duration
	var res Result
	next := 0
	running := 0

	for next < len(p.TaskDurations) || running > 0 {
		// Fill every free permit before advancing time, in submission order.
		for running < p.MaxConcurrency && next < len(p.TaskDurations) {
			heap.PushOrderable(&events, finishEvent{
				Time:  now + p.TaskDurations[next],
				Index: next,
			})
			next++
			running++
			res.PeakConcurrency = max(res.PeakConcurrency, running)
		}

		event, ok := heap.PopOrderable(&events)
		if !ok {
			break
		}
		now = event.Time
		running--
		res.FinishOrder = append(res.FinishOrder, event.Index)
	}

	res.Makespan = now
	return res
}

type finishEvent struct {
	Time  time.Duration
	Index int
}

func (a *finishEvent) Cmp(b *finishEvent) int {
	if c := cmp.Compare(a.Time, b.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

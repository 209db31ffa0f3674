// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/rinihandini/Multithreading/internal/permit"
)

// Runner executes batches of tasks subject to a shared concurrency bound.
//
// Each [Runner.Run] call submits one batch. Task starts are throttled by a
// permit pool of [Config.MaxConcurrency] permits shared across all batches,
// with permits granted in submission order. When the last task of a batch
// finishes, the batch's outcomes are delivered to its completion callback on
// the runner's single completion goroutine, so callbacks never overlap with
// each other even when batches do.
//
// A Runner must be created with [New]. All methods are safe for concurrent
// use.
type Runner struct {
	cfg     Config
	permits *permit.Pool

	// notifyCh carries finished batches to the completion goroutine. It is
	// unbuffered so that a batch is owned by exactly one side at a time.
	notifyCh     chan *batch
	notifierDone chan struct{}

	mu      sync.Mutex
	closed  bool
	batches sync.WaitGroup

	closeOnce sync.Once
}

// New creates a [Runner] and starts its completion goroutine. It returns
// [ErrConcurrencyLimit] when the configuration does not allow at least one
// concurrent task. The caller is responsible for calling [Runner.Close] once
// the runner is no longer needed.
func New(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:          cfg,
		permits:      permit.NewPool(cfg.MaxConcurrency),
		notifyCh:     make(chan *batch),
		notifierDone: make(chan struct{}),
	}
	go r.notifyLoop()
	return r, nil
}

// Run submits tasks as one batch and returns without waiting for any of them
// to start or finish. Tasks acquire execution permits in slice order, though
// they may finish in any order. When every task in the batch has finished,
// onComplete receives one [Outcome] per task, indexed by submission position,
// on the runner's completion goroutine.
//
// ctx bounds the batch: it is passed to every task, and once it ends, tasks
// that have not yet acquired a permit are skipped with the context's error
// recorded as their outcome. Skipped tasks still count toward completion, so
// onComplete always receives exactly len(tasks) outcomes.
//
// Run panics if onComplete or any task is nil. After [Runner.Close] has been
// called it returns [ErrRunnerClosed].
func (r *Runner) Run(ctx context.Context, tasks []Task, onComplete func([]Outcome)) error {
	if onComplete == nil {
		panic("completion callback must be non-nil")
	}
	for _, task := range tasks {
		if task == nil {
			panic("task function must be non-nil")
		}
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	r.batches.Add(1)
	r.mu.Unlock()

	b := newBatch(tasks, onComplete)
	log.Info("batch submitted",
		zap.String("batch", b.id),
		zap.Int("tasks", len(b.tasks)),
		zap.Int("maxConcurrency", r.cfg.MaxConcurrency))
	go r.dispatch(ctx, b)
	return nil
}

// dispatch starts the batch's tasks in submission order, holding the
// submission back whenever the permit pool is exhausted. It runs on its own
// goroutine so Run never blocks the caller.
func (r *Runner) dispatch(ctx context.Context, b *batch) {
	if len(b.tasks) == 0 {
		r.notifyBatch(b)
		return
	}
	for i := range b.tasks {
		waitStart := time.Now()
		if err := r.permits.Acquire(ctx); err != nil {
			// The batch context ended before this task could start. Its
			// outcome records the context error, and it still counts toward
			// the completion barrier.
			log.Debug("task not started",
				zap.String("batch", b.id),
				zap.Int("index", i),
				zap.Error(err))
			r.finishTask(b, i, err, 0)
			continue
		}
		PermitWaitDuration.Observe(time.Since(waitStart).Seconds())
		go r.runTask(ctx, b, i)
	}
}

// runTask executes task i of the batch while holding a permit.
func (r *Runner) runTask(ctx context.Context, b *batch, i int) {
	log.Debug("task started", zap.String("batch", b.id), zap.Int("index", i))
	RunningTasks.Inc()
	StartedTasks.Inc()

	start := time.Now()
	err := invoke(ctx, b.tasks[i])
	elapsed := time.Since(start)

	RunningTasks.Dec()
	// Free the permit before batch bookkeeping so a waiting task can start
	// while the outcome is recorded.
	r.permits.Release()

	if err != nil {
		CompletedTasks.WithLabelValues(resultFailed).Inc()
		log.Warn("task failed",
			zap.String("batch", b.id),
			zap.Int("index", i),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		CompletedTasks.WithLabelValues(resultOK).Inc()
		log.Debug("task completed",
			zap.String("batch", b.id),
			zap.Int("index", i),
			zap.Duration("elapsed", elapsed))
	}

	r.finishTask(b, i, err, elapsed)
}

// invoke calls the task and converts a panic into an error wrapping
// [ErrTaskPanic], so one misbehaving task cannot take down the runner.
func invoke(ctx context.Context, task Task) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, v)
		}
	}()
	return task(ctx)
}

func (r *Runner) finishTask(b *batch, i int, err error, elapsed time.Duration) {
	if b.finish(i, err, elapsed) {
		r.notifyBatch(b)
	}
}

// notifyBatch hands a finished batch to the completion goroutine. The channel
// send happens after every task's finish event, which is what makes the
// completion callback a join barrier for the batch.
func (r *Runner) notifyBatch(b *batch) {
	BatchDuration.Observe(time.Since(b.start).Seconds())
	r.notifyCh <- b
	r.batches.Done()
}

// notifyLoop is the runner's completion goroutine: a single fixed goroutine,
// distinct from every task goroutine, on which all completion callbacks run
// one at a time.
func (r *Runner) notifyLoop() {
	defer close(r.notifierDone)
	for b := range r.notifyCh {
		log.Info("batch complete",
			zap.String("batch", b.id),
			zap.Int("tasks", len(b.outcomes)),
			zap.Int("failed", b.failed()),
			zap.Duration("elapsed", time.Since(b.start)))
		b.onComplete(b.outcomes)
	}
}

// Close waits for every in-flight batch to deliver its completion callback
// and then stops the completion goroutine. After Close has begun, [Runner.Run]
// rejects new batches with [ErrRunnerClosed]. Close is idempotent and safe to
// call concurrently; every call blocks until shutdown is complete.
//
// Close must not be called from within a completion callback, as the callback
// runs on the goroutine Close waits for.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		r.batches.Wait()
		close(r.notifyCh)
	})
	<-r.notifierDone
}

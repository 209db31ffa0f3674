// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package otrunner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	taskrunner "github.com/rinihandini/Multithreading"
)

// TracedTask adds a span with the given operation name around a task
// function. The span covers the task's execution only, not the time it spent
// waiting for a permit, and records the task's error if it fails.
func TracedTask(operationName string, task taskrunner.Task) taskrunner.Task {
	return func(ctx context.Context) error {
		tracer := otel.Tracer("otrunner")
		ctx, span := tracer.Start(ctx, operationName)
		defer span.End()

		err := task(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

// TracedRun submits a batch under a batch-level span. Each task gets a child
// span named "<operationName>/<index>", and the batch span ends at the join
// barrier, right before onComplete runs, annotated with the number of failed
// tasks.
func TracedRun(
	ctx context.Context,
	runner *taskrunner.Runner,
	operationName string,
	tasks []taskrunner.Task,
	onComplete func([]taskrunner.Outcome),
) error {
	if onComplete == nil {
		panic("completion callback must be non-nil")
	}

	tracer := otel.Tracer("otrunner")
	ctx, span := tracer.Start(ctx, operationName)
	span.SetAttributes(attribute.Int("tasks", len(tasks)))

	wrapped := make([]taskrunner.Task, len(tasks))
	for i, task := range tasks {
		if task == nil {
			// Leave the nil in place so the runner's own misuse check fires.
			continue
		}
		wrapped[i] = TracedTask(fmt.Sprintf("%s/%d", operationName, i), task)
	}

	err := runner.Run(ctx, wrapped, func(outcomes []taskrunner.Outcome) {
		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
			}
		}
		span.SetAttributes(attribute.Int("failed", failed))
		if failed > 0 {
			span.SetStatus(codes.Error, "batch had failed tasks")
		}
		span.End()
		onComplete(outcomes)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
	}
	return err
}

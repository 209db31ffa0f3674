// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

// Package otrunner provides OpenTelemetry integration for the taskrunner
// library. It enables transparent propagation of trace context into tasks and
// completion callbacks without requiring users to manually handle context
// propagation.
package otrunner

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	taskrunner "github.com/rinihandini/Multithreading"
)

// PropagateTask wraps a task so that it executes under the trace context that
// was active in ctx when the wrapper was created. Tasks are often built inside
// a traced request handler but submitted to a shared runner whose batch
// context belongs to no trace at all; without the wrapper, spans created in
// the task body would start new traces instead of parenting to the request.
//
// Only the span context is carried over. Deadline and cancellation of the
// context supplied by the runner remain in effect.
func PropagateTask(ctx context.Context, task taskrunner.Task) taskrunner.Task {
	// Capture the trace context at wrap time, not execution time
	captured := trace.SpanFromContext(ctx).SpanContext()

	return func(runCtx context.Context) error {
		if captured.IsValid() {
			runCtx = trace.ContextWithRemoteSpanContext(runCtx, captured)
		}
		return task(runCtx)
	}
}

// PropagateCompletion adapts a context-aware completion callback to the shape
// [taskrunner.Runner.Run] expects, handing it a context that carries the trace
// active in ctx at submission time. Spans created inside the callback are
// thereby parented to the submitting trace even though the callback runs on
// the runner's completion goroutine.
//
// The context passed to onComplete carries only the captured trace context. It
// has no deadline and none of the submission context's values, since the batch
// may outlive them.
func PropagateCompletion(
	ctx context.Context,
	onComplete func(context.Context, []taskrunner.Outcome),
) func([]taskrunner.Outcome) {
	if onComplete == nil {
		panic("completion callback must be non-nil")
	}

	// Capture the trace context before the submitting span ends
	captured := trace.SpanFromContext(ctx).SpanContext()

	return func(outcomes []taskrunner.Outcome) {
		cctx := context.Background()
		if captured.IsValid() {
			cctx = trace.ContextWithRemoteSpanContext(cctx, captured)
		}
		onComplete(cctx, outcomes)
	}
}

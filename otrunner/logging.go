// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package otrunner

import (
	"context"
	"time"

	"go.uber.org/zap"

	taskrunner "github.com/rinihandini/Multithreading"
)

// LoggedTask adds structured logging to a task function.
// This wrapper logs the start and completion of task execution, including
// timing information and any errors that occur.
func LoggedTask(operationName string, task taskrunner.Task) taskrunner.Task {
	return func(ctx context.Context) error {
		// This implementation uses the zap global logger, but could be
		// adapted for any logger.
		logger := zap.L()

		logger.Debug("Starting task",
			zap.String("operation", operationName),
			zap.String("component", "otrunner"))

		startTime := time.Now()
		err := task(ctx)
		duration := time.Since(startTime)

		if err != nil {
			logger.Error("Task failed",
				zap.String("operation", operationName),
				zap.String("component", "otrunner"),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("Task completed",
				zap.String("operation", operationName),
				zap.String("component", "otrunner"),
				zap.Duration("duration", duration))
		}

		return err
	}
}

// LoggedCompletion adds structured logging to a completion callback, noting
// how many outcomes were delivered and how many of them carry errors.
func LoggedCompletion(operationName string, onComplete func([]taskrunner.Outcome)) func([]taskrunner.Outcome) {
	return func(outcomes []taskrunner.Outcome) {
		logger := zap.L()

		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
			}
		}
		logger.Debug("Delivering batch outcomes",
			zap.String("operation", operationName),
			zap.String("component", "otrunner"),
			zap.Int("outcomes", len(outcomes)),
			zap.Int("failed", failed))

		startTime := time.Now()
		onComplete(outcomes)

		logger.Debug("Completion callback finished",
			zap.String("operation", operationName),
			zap.String("component", "otrunner"),
			zap.Duration("duration", time.Since(startTime)))
	}
}

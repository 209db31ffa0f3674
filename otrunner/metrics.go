// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package otrunner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	taskrunner "github.com/rinihandini/Multithreading"
)

// MetricsTask adds metrics collection to a task function.
// This wrapper records count, duration, and error metrics for task execution.
func MetricsTask(metricName string, task taskrunner.Task) taskrunner.Task {
	return func(ctx context.Context) error {
		startTime := time.Now()
		meter := otel.GetMeterProvider().Meter("otrunner")

		taskCounter, _ := meter.Int64Counter(metricName + ".count")
		taskDuration, _ := meter.Float64Histogram(metricName + ".duration")

		taskCounter.Add(ctx, 1)

		err := task(ctx)

		taskDuration.Record(ctx, time.Since(startTime).Seconds())

		if err != nil {
			errorCounter, _ := meter.Int64Counter(metricName + ".errors")
			errorCounter.Add(ctx, 1)
		}

		return err
	}
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

import (
	"time"
)

// An Outcome is the completion record of one task. The slice passed to a
// batch's completion callback holds one Outcome per submitted task, ordered by
// submission: element i describes task i.
type Outcome struct {
	// Index is the task's ordinal position in the batch.
	Index int

	// Err is nil if the task returned successfully. Otherwise it is the error
	// the task returned, an error wrapping [ErrTaskPanic] if it panicked, or
	// the context error if cancellation prevented the task from starting.
	Err error

	// Elapsed is how long the task executed. It is zero for a task that never
	// started.
	Elapsed time.Duration
}

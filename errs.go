// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrConcurrencyLimit reports an invalid [Config]: the concurrency limit must
// allow at least one task to run.
const ErrConcurrencyLimit = constError("concurrency limit must be at least one")

// ErrRunnerClosed is returned by [Runner.Run] once [Runner.Close] has begun.
const ErrRunnerClosed = constError("runner is closed")

// ErrTaskPanic marks an [Outcome] whose task panicked instead of returning.
// The recovered value is included in the outcome's error text.
const ErrTaskPanic = constError("task panicked")

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

import (
	"context"
)

// A Task is one unit of work submitted to a [Runner]. It returns nil on
// success or an error describing its failure. The provided context should be
// respected for cancellation; it is the context passed to
// [Runner.Run]. Any other inputs to the task are expected to be provided by
// specifying the Task as a [function literal] that references and therefore
// captures local variables via [lexical closure].
//
// Each Task is executed in its own goroutine and must therefore be
// thread-safe. This includes access to any captured variables. Tasks in a
// batch are assumed independent; if they do share state, guarding it is the
// caller's responsibility, not the runner's.
//
// A Task that panics does not terminate the program: the runner recovers the
// panic and records it as that task's failure, wrapping [ErrTaskPanic].
// Sibling tasks and the batch's completion callback are unaffected.
//
// A task has no identity beyond its ordinal position in the batch, which is
// reported back through [Outcome.Index] and appears in log output.
//
// [function literal]: https://go.dev/ref/spec#Function_literals
// [lexical closure]: https://en.wikipedia.org/wiki/Closure_(computer_programming)
type Task = func(context.Context) error

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner

// Config holds the immutable parameters of a [Runner].
type Config struct {
	// MaxConcurrency is the number of permits in the runner's pool: the count
	// of tasks allowed to execute at any instant, across all in-flight
	// batches. Must be at least one.
	MaxConcurrency int
}

// Validate reports whether the configuration can produce a working runner.
// Returns [ErrConcurrencyLimit] when MaxConcurrency is zero or negative.
func (c Config) Validate() error {
	if c.MaxConcurrency < 1 {
		return ErrConcurrencyLimit
	}
	return nil
}

// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

// Package recordsink defines the durable record sink written to by tasks.
//
// The sink is an external collaborator of the task runner: a task body
// stages records with [Sink.Insert] and makes them durable with [Sink.Save].
// The runner itself never touches a sink; it only schedules the tasks that
// do.
package recordsink

import (
	"slices"
	"sync"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrEmptyID is returned by [Sink.Insert] for records without an ID.
const ErrEmptyID = constError("record id must not be empty")

// Record is one opaque payload to be persisted.
type Record struct {
	ID      string
	Payload string
}

// Sink accepts records staged by [Sink.Insert] and made durable by
// [Sink.Save]. Implementations must be safe for concurrent use, as tasks
// running in parallel may share one sink.
type Sink interface {
	Insert(rec Record) error
	Save() error
}

// Memory is an in-memory [Sink]. Inserted records are staged and become
// visible through [Memory.Saved] only after [Memory.Save]. The zero value is
// ready to use.
type Memory struct {
	mu     sync.Mutex
	staged []Record
	saved  []Record
}

var _ Sink = (*Memory)(nil)

// Insert stages rec for the next [Memory.Save].
func (m *Memory) Insert(rec Record) error {
	if rec.ID == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged = append(m.staged, rec)
	return nil
}

// Save promotes all staged records to the saved set, in insertion order.
func (m *Memory) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, m.staged...)
	m.staged = nil
	return nil
}

// Staged returns the number of records awaiting [Memory.Save].
func (m *Memory) Staged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.staged)
}

// Saved returns a copy of the records made durable so far.
func (m *Memory) Saved() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.saved)
}

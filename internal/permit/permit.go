// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

// Package permit implements a counting permit pool with first-come-first-served
// handoff. A released permit is handed directly to the waiter at the front of
// the queue rather than returned to the free count, so a late arrival can never
// overtake a goroutine that is already waiting.
package permit

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
)

// Pool is a fixed-size set of permits. Acquire takes one permit, blocking in
// arrival order when none is free; Release returns one. The zero value is not
// usable; create pools with [NewPool].
type Pool struct {
	mu      sync.Mutex
	free    int
	held    int
	waiters deque.Deque[chan struct{}]
}

// NewPool creates a pool with the given number of permits.
//
// Panics if n is less than one; callers are expected to have validated their
// configuration before constructing a pool.
func NewPool(n int) *Pool {
	if n < 1 {
		panic("permit: pool size must be at least one")
	}
	return &Pool{free: n}
}

// Acquire obtains one permit, blocking until one is granted or ctx is done.
// Waiters are granted permits in the order their Acquire calls enqueued them.
//
// Returns nil once a permit is held, or the context error if ctx was done
// first. If cancellation races with a grant, the permit is passed on to the
// next waiter and the context error is still returned.
func (p *Pool) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.waiters.Len() == 0 && p.free > 0 {
		p.free--
		p.held++
		p.mu.Unlock()
		return nil
	}
	grant := make(chan struct{})
	p.waiters.PushBack(grant)
	p.mu.Unlock()

	select {
	case <-grant:
		return nil
	case <-ctx.Done():
	}

	// Cancelled while waiting. The grant may have arrived between ctx firing
	// and re-locking the pool; if it did, the permit belongs to this waiter
	// and must be forwarded rather than leaked.
	p.mu.Lock()
	select {
	case <-grant:
		p.releaseLocked()
	default:
		p.remove(grant)
	}
	p.mu.Unlock()
	return ctx.Err()
}

// Release returns one permit to the pool, waking the front waiter if any.
//
// Panics if called without a corresponding successful Acquire.
func (p *Pool) Release() {
	p.mu.Lock()
	p.releaseLocked()
	p.mu.Unlock()
}

// Waiters reports how many Acquire calls are currently blocked.
func (p *Pool) Waiters() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waiters.Len()
}

func (p *Pool) releaseLocked() {
	p.held--
	if p.held < 0 {
		panic("permit: released more than held")
	}
	if p.waiters.Len() > 0 {
		// Hand the permit straight to the front waiter. Closing the grant
		// channel transfers ownership; the waiter is the holder from here on.
		grant := p.waiters.PopFront()
		p.held++
		close(grant)
		return
	}
	p.free++
}

// remove withdraws a still-queued waiter. Grant channels are closed only while
// holding the mutex, so an unclosed channel is guaranteed to be in the queue.
func (p *Pool) remove(grant chan struct{}) {
	i := p.waiters.Index(func(c chan struct{}) bool { return c == grant })
	if i < 0 {
		panic("permit: waiter not in queue")
	}
	p.waiters.Remove(i)
}

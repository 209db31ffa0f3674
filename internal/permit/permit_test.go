// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package permit_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rinihandini/Multithreading/internal/permit"
	"github.com/stretchr/testify/require"
)

func TestPoolSizePanics(t *testing.T) {
	chk := require.New(t)
	chk.PanicsWithValue("permit: pool size must be at least one", func() {
		permit.NewPool(0)
	})
	chk.PanicsWithValue("permit: pool size must be at least one", func() {
		permit.NewPool(-3)
	})
}

func TestPoolReleaseUnheldPanics(t *testing.T) {
	chk := require.New(t)
	p := permit.NewPool(1)
	chk.PanicsWithValue("permit: released more than held", func() {
		p.Release()
	})
}

func TestPoolCapsConcurrentHolders(t *testing.T) {
	chk := require.New(t)
	ctx := context.Background()

	const size = 3
	const goroutines = 20
	p := permit.NewPool(size)

	var current, peak atomic.Int64
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			chk.NoError(p.Acquire(ctx))
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			current.Add(-1)
			p.Release()
		}()
	}
	wg.Wait()

	chk.LessOrEqual(peak.Load(), int64(size))
	chk.Positive(peak.Load())
}

func TestPoolGrantsInArrivalOrder(t *testing.T) {
	chk := require.New(t)
	ctx := context.Background()

	p := permit.NewPool(1)
	chk.NoError(p.Acquire(ctx))

	// Enqueue three waiters one at a time, using the waiter count to be sure
	// each is queued before the next arrives.
	grants := make(chan int, 3)
	for i := range 3 {
		go func() {
			chk.NoError(p.Acquire(ctx))
			grants <- i
		}()
		waitForWaiters(t, p, i+1)
	}

	// Releasing one permit at a time must wake the waiters front to back.
	for want := range 3 {
		p.Release()
		select {
		case got := <-grants:
			chk.Equal(want, got)
		case <-time.After(5 * time.Second):
			chk.FailNow("timed out waiting for grant")
		}
	}
	p.Release()
}

func TestPoolAcquireCancelled(t *testing.T) {
	chk := require.New(t)

	p := permit.NewPool(1)
	chk.NoError(p.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Acquire(ctx)
	}()
	waitForWaiters(t, p, 1)

	cancel()
	select {
	case err := <-errCh:
		chk.ErrorIs(err, context.Canceled)
	case <-time.After(5 * time.Second):
		chk.FailNow("timed out waiting for cancelled acquire")
	}

	// The withdrawn waiter must not have leaked a slot: releasing and
	// re-acquiring must still work.
	chk.Equal(0, p.Waiters())
	p.Release()
	chk.NoError(p.Acquire(context.Background()))
	p.Release()
}

func TestPoolAcquireOnDoneContext(t *testing.T) {
	chk := require.New(t)
	p := permit.NewPool(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chk.ErrorIs(p.Acquire(ctx), context.Canceled)
}

func waitForWaiters(t *testing.T, p *permit.Pool, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for p.Waiters() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d waiters", n)
		}
		time.Sleep(time.Millisecond)
	}
}

package resilience

import (
	"context"
	"fmt"
	"sync"
)

// Flight collapses concurrent calls for the same key into one execution.
// The execution runs on a context detached from every caller's cancellation;
// it is cancelled only once all of its callers have given up.
type Flight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done    chan struct{}
	cancel  context.CancelFunc
	val     T
	err     error
	waiters int
	joins   int
}

// Do runs fn once per key at a time and waits for it or for ctx, whichever
// ends first. shared reports whether the call served more than one caller.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (val T, shared bool, err error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]*flightCall[T])
	}
	c, joined := f.calls[key]
	if joined {
		c.waiters++
		c.joins++
	} else {
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c = &flightCall[T]{done: make(chan struct{}), cancel: cancel, waiters: 1}
		f.calls[key] = c
		go f.run(callCtx, key, c, fn)
	}
	f.mu.Unlock()

	select {
	case <-c.done:
		f.mu.Lock()
		shared = c.joins > 0
		f.mu.Unlock()
		return c.val, shared, c.err
	case <-ctx.Done():
		f.leave(key, c)
		var zero T
		return zero, joined, ctx.Err()
	}
}

// InFlight reports how many keys currently have a running call.
func (f *Flight[T]) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// leave drops one waiter. The last waiter out cancels the call and unlinks
// it so later callers start a fresh one.
func (f *Flight[T]) leave(key string, c *flightCall[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.waiters--
	if c.waiters > 0 {
		return
	}
	c.cancel()
	if f.calls[key] == c {
		delete(f.calls, key)
	}
}

func (f *Flight[T]) run(ctx context.Context, key string, c *flightCall[T], fn func(context.Context) (T, error)) {
	defer func() {
		if r := recover(); r != nil {
			c.err = fmt.Errorf("singleflight %q panicked: %v", key, r)
		}
		f.mu.Lock()
		if f.calls[key] == c {
			delete(f.calls, key)
		}
		f.mu.Unlock()
		c.cancel()
		close(c.done)
	}()
	c.val, c.err = fn(ctx)
}

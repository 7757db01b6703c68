package task

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Future is a handle to a call running in the background.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn in a new goroutine and returns immediately. If timeout is
// positive, fn receives a context that expires after timeout; otherwise it
// receives ctx unchanged.
func Go[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		callCtx, cancel := withOptionalTimeout(ctx, timeout)
		defer cancel()
		f.val, f.err = fn(callCtx)
	}()
	return f
}

// Done returns a channel that is closed when the call has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call has finished and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.val, f.err
}

// Options tunes All.
type Options struct {
	// Limit caps the number of tasks in flight. Zero or negative means no
	// limit: every task is launched before any result is awaited.
	Limit int
	// Timeout bounds each task individually. Zero means no per-task bound.
	Timeout time.Duration
}

// All runs fn once per item concurrently and waits for all of them. The
// returned slice has one Result per item, in the order of items.
func All[In, Out any](ctx context.Context, opts Options, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(items))

	var g errgroup.Group
	if opts.Limit > 0 {
		g.SetLimit(opts.Limit)
	}
	for i, item := range items {
		g.Go(func() error {
			callCtx, cancel := withOptionalTimeout(ctx, opts.Timeout)
			defer cancel()
			v, err := fn(callCtx, item)
			results[i] = Result[Out]{Value: v, Err: err}
			// Per-task failures live in results; returning nil keeps the
			// group from short-circuiting.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

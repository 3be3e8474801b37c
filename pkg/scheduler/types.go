package scheduler

import (
	"context"
)

// Work is a unit of work run with a context cancelled on stop or close.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future delivers exactly one value.
type Future[T any] struct {
	out  <-chan T
	stop func()
}

func NewFuture[T any](out <-chan T, stop func()) *Future[T] {
	return &Future[T]{out: out, stop: stop}
}

func (f *Future[T]) C() <-chan T {
	return f.out
}

// Stop cancels the work. It does not wait for it to return.
func (f *Future[T]) Stop() {
	f.stop()
}

// Wait blocks until the value arrives or ctx is done. The work is stopped
// when ctx ends first.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-f.out:
		return v, nil
	case <-ctx.Done():
		f.Stop()
		var zero T
		return zero, ctx.Err()
	}
}

// Await collects the results of futures in order. The first error stops the
// futures not yet collected and is returned.
func Await(ctx context.Context, futures ...*Future[Result[any]]) ([]any, error) {
	out := make([]any, len(futures))
	for i, f := range futures {
		r, err := f.Wait(ctx)
		if err == nil {
			err = r.Err
		}
		if err != nil {
			for _, rest := range futures[i+1:] {
				rest.Stop()
			}
			return nil, err
		}
		out[i] = r.Data
	}
	return out, nil
}

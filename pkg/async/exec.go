package async

import (
	"context"
	"fmt"
	"time"
)

// ExecFuture represents the result of an asynchronous computation that only returns an error.
type ExecFuture struct {
	state
}

// Exec executes a function asynchronously that only returns an error.
// The function accepts a context.Context and a parameter of any type T, and returns error.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{}
	f.init()

	go func() {
		// Early exit prevents goroutine work when context is pre-canceled
		select {
		case <-ctx.Done():
			f.settle(ctx.Err(), nil)
			return
		default:
		}

		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()
			err = fn(ctx, param)
		}()

		f.settle(err, nil)
	}()

	return f
}

// Await waits for the asynchronous function to complete and returns its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.result()
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// Returns the error if the function completes before the timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.result()
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *ExecFuture) IsComplete() bool {
	return f.isComplete()
}

// Done returns a channel closed when the function completes.
func (f *ExecFuture) Done() <-chan struct{} {
	return f.done
}

// Catch registers fn to receive the error if the function fails.
// fn runs at most once, on a goroutine other than the caller's.
func (f *ExecFuture) Catch(fn func(error)) {
	if fn != nil {
		f.register(func() {
			if err := f.result(); err != nil {
				fn(err)
			}
		})
	}
}

// Finally registers fn to run once the function completes either way.
func (f *ExecFuture) Finally(fn func()) {
	f.register(fn)
}

// ExecAll waits for all futures to complete and returns an error
// if any of the futures returned an error.
func ExecAll(futures ...*ExecFuture) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}

// ExecAny waits for any of the futures to complete and returns the index of the completed future
// and any error it might have returned.
func ExecAny(futures ...*ExecFuture) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}

	type result struct {
		index int
		err   error
	}

	// Buffered so the remaining goroutines exit once their futures finish
	done := make(chan result, len(futures))
	for i, future := range futures {
		go func(index int, f *ExecFuture) {
			done <- result{index: index, err: f.Await()}
		}(i, future)
	}

	res := <-done
	return res.index, res.err
}

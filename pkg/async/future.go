package async

import (
	"context"
	"fmt"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	state
	value U
}

// Async executes fn asynchronously with the given parameter.
// The returned future settles with fn's result; a panic inside fn rejects it
// with an error wrapping ErrPanic.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{}
	f.init()

	go func() {
		// Early exit prevents running work for a request that is already gone
		select {
		case <-ctx.Done():
			f.reject(ctx.Err())
			return
		default:
		}

		var (
			val U
			err error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()
			val, err = fn(ctx, param)
		}()

		if err != nil {
			f.reject(err)
			return
		}
		f.resolve(val)
	}()

	return f
}

// Resolve returns a future already fulfilled with v.
func Resolve[U any](v U) *Future[U] {
	f := &Future[U]{}
	f.init()
	f.resolve(v)
	return f
}

// Reject returns a future already failed with err.
func Reject[U any](err error) *Future[U] {
	f := &Future[U]{}
	f.init()
	f.reject(err)
	return f
}

func (f *Future[U]) resolve(v U) {
	f.settle(nil, func() { f.value = v })
}

func (f *Future[U]) reject(err error) {
	f.settle(err, nil)
}

// Await waits for the computation to complete and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.outcome()
}

// AwaitWithTimeout waits for the computation with a timeout.
// Returns ErrTimeout if the future has not settled in time.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.outcome()
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the computation has settled without blocking.
func (f *Future[U]) IsComplete() bool {
	return f.isComplete()
}

// Done returns a channel closed when the future settles.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Then registers fn to receive the value if the future succeeds.
func (f *Future[U]) Then(fn func(U)) {
	if fn != nil {
		f.register(func() {
			if v, err := f.outcome(); err == nil {
				fn(v)
			}
		})
	}
}

// Catch registers fn to receive the error if the future fails.
// fn runs at most once, on a goroutine other than the caller's.
func (f *Future[U]) Catch(fn func(error)) {
	if fn != nil {
		f.register(func() {
			if _, err := f.outcome(); err != nil {
				fn(err)
			}
		})
	}
}

// Finally registers fn to run once the future settles either way.
func (f *Future[U]) Finally(fn func()) {
	f.register(fn)
}

func (f *Future[U]) outcome() (U, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// WaitAll waits for all futures to complete and returns their values in order.
// Returns the first error encountered.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, future := range futures {
		v, err := future.Await()
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// WaitAny returns the index and result of the first future to complete.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type result struct {
		index int
		value U
		err   error
	}

	// Buffered so late finishers never block
	done := make(chan result, len(futures))
	for i, future := range futures {
		go func(index int, f *Future[U]) {
			v, err := f.Await()
			done <- result{index: index, value: v, err: err}
		}(i, future)
	}

	res := <-done
	return res.index, res.value, res.err
}

package async_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asyncware/pkg/async"
)

func TestExecErrorPropagation(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("an error occurred in the exec function")

	future := async.Exec(context.Background(), 42, func(ctx context.Context, num int) error {
		return expectedErr
	})

	assert.ErrorIs(t, future.Await(), expectedErr)
	assert.True(t, future.IsComplete())
}

func TestExecContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := atomic.Bool{}
	future := async.Exec(ctx, 42, func(ctx context.Context, num int) error {
		called.Store(true)
		return nil
	})

	assert.ErrorIs(t, future.Await(), context.Canceled)
	assert.False(t, called.Load(), "function must not run for a canceled context")
}

func TestExecPanicRejects(t *testing.T) {
	t.Parallel()

	future := async.Exec(context.Background(), "x", func(ctx context.Context, s string) error {
		panic("boom")
	})

	err := future.Await()
	require.Error(t, err)
	assert.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "boom")
}

func TestExecConcurrentIncrement(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	counter := 0

	futures := make([]*async.ExecFuture, 0, 100)
	for range 100 {
		futures = append(futures, async.Exec(context.Background(), 1, func(ctx context.Context, delta int) error {
			mu.Lock()
			defer mu.Unlock()
			counter += delta
			return nil
		}))
	}

	require.NoError(t, async.ExecAll(futures...))
	assert.Equal(t, 100, counter)
}

func TestExecAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	slow := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
		<-release
		return nil
	})

	assert.ErrorIs(t, slow.AwaitWithTimeout(20*time.Millisecond), async.ErrTimeout)
	assert.False(t, slow.IsComplete())
}

func TestExecAllWithError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("error from future2")
	ctx := context.Background()

	ok := func(ctx context.Context, _ int) error { return nil }
	future1 := async.Exec(ctx, 1, ok)
	future2 := async.Exec(ctx, 2, func(ctx context.Context, _ int) error { return expectedErr })
	future3 := async.Exec(ctx, 3, ok)

	assert.ErrorIs(t, async.ExecAll(future1, future2, future3), expectedErr)
}

func TestExecAny(t *testing.T) {
	t.Parallel()

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()
		index, err := async.ExecAny()
		assert.Equal(t, -1, index)
		assert.ErrorIs(t, err, async.ErrNoFutures)
	})

	t.Run("first finished wins", func(t *testing.T) {
		t.Parallel()

		block := make(chan struct{})
		defer close(block)

		ctx := context.Background()
		blocked := async.Exec(ctx, 0, func(ctx context.Context, _ int) error {
			<-block
			return nil
		})
		expectedErr := errors.New("fast failure")
		fast := async.Exec(ctx, 1, func(ctx context.Context, _ int) error { return expectedErr })

		index, err := async.ExecAny(blocked, fast)
		assert.Equal(t, 1, index)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestExecCatch(t *testing.T) {
	t.Parallel()

	t.Run("failure invokes callback once", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("failed")
		future := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
			return expectedErr
		})

		got := make(chan error, 2)
		future.Catch(func(err error) { got <- err })

		select {
		case err := <-got:
			assert.ErrorIs(t, err, expectedErr)
		case <-time.After(time.Second):
			t.Fatal("catch callback was not invoked")
		}

		select {
		case <-got:
			t.Fatal("catch callback invoked twice")
		case <-time.After(20 * time.Millisecond):
		}
	})

	t.Run("success skips callback and runs finally", func(t *testing.T) {
		t.Parallel()

		future := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
			return nil
		})

		var caught atomic.Bool
		finished := make(chan struct{})
		future.Catch(func(error) { caught.Store(true) })
		future.Finally(func() { close(finished) })

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("finally callback was not invoked")
		}
		// Callbacks run in registration order, so Catch has been considered already
		assert.False(t, caught.Load())
	})
}

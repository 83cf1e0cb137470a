package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asyncware/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("resolves with value", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		})

		v, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("rejects with error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("lookup failed")
		future := async.Async(context.Background(), "id", func(ctx context.Context, id string) (string, error) {
			return "", expectedErr
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("panic rejects", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			panic("kaboom")
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, async.ErrPanic)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		future := async.Async(ctx, 0, func(ctx context.Context, _ int) (int, error) {
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFutureSettledConstructors(t *testing.T) {
	t.Parallel()

	resolved := async.Resolve("ok")
	assert.True(t, resolved.IsComplete())
	v, err := resolved.Await()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	expectedErr := errors.New("rejected")
	rejected := async.Reject[int](expectedErr)
	assert.True(t, rejected.IsComplete())
	_, err = rejected.Await()
	assert.ErrorIs(t, err, expectedErr)
}

func TestFutureCallbacks(t *testing.T) {
	t.Parallel()

	t.Run("callbacks never run inside the registering call", func(t *testing.T) {
		t.Parallel()

		future := async.Reject[int](errors.New("y"))

		var mu sync.Mutex
		ran := false
		done := make(chan struct{})

		mu.Lock()
		future.Catch(func(error) {
			mu.Lock()
			ran = true
			mu.Unlock()
			close(done)
		})
		// Still holding the lock: a synchronous callback would deadlock here
		assert.False(t, ran)
		mu.Unlock()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("catch callback was not invoked")
		}
	})

	t.Run("registration order is preserved", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			<-release
			return 7, nil
		})

		var mu sync.Mutex
		var order []string
		record := func(s string) {
			mu.Lock()
			order = append(order, s)
			mu.Unlock()
		}

		finished := make(chan struct{})
		future.Then(func(v int) { record("then") })
		future.Catch(func(error) { record("catch") })
		future.Finally(func() {
			record("finally")
			close(finished)
		})
		close(release)

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("finally callback was not invoked")
		}

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"then", "finally"}, order)
	})

	t.Run("panicking callback does not stop the queue", func(t *testing.T) {
		t.Parallel()

		future := async.Resolve(1)
		done := make(chan struct{})
		future.Then(func(int) { panic("callback failure") })
		future.Finally(func() { close(done) })

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("finally callback was not invoked")
		}
	})
}

func TestFutureAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})

	_, err := future.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	double := func(ctx context.Context, n int) (int, error) { return n * 2, nil }

	values, err := async.WaitAll(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, double),
		async.Async(ctx, 3, double),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, values)

	expectedErr := errors.New("second failed")
	_, err = async.WaitAll(async.Resolve(1), async.Reject[int](expectedErr))
	assert.ErrorIs(t, err, expectedErr)
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	_, _, err := async.WaitAny[int]()
	assert.ErrorIs(t, err, async.ErrNoFutures)

	block := make(chan struct{})
	defer close(block)

	blocked := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		<-block
		return 0, nil
	})

	index, v, err := async.WaitAny(blocked, async.Resolve(5))
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, 5, v)
}

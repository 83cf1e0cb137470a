package asyncware_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asyncware"
)

func TestIsHandler(t *testing.T) {
	t.Parallel()

	valid := asyncware.Handler[*request, *response, asyncware.NextFunc](
		func(*request, *response, asyncware.NextFunc) any { return nil },
	)
	assert.True(t, asyncware.IsHandler(valid))
	assert.False(t, asyncware.IsHandler[*request, *response, asyncware.NextFunc](nil))
}

func TestIsErrorHandler(t *testing.T) {
	t.Parallel()

	valid := asyncware.ErrorHandler[*request, *response, asyncware.NextFunc](
		func(error, *request, *response, asyncware.NextFunc) any { return nil },
	)
	assert.True(t, asyncware.IsErrorHandler(valid))
	assert.False(t, asyncware.IsErrorHandler[*request, *response, asyncware.NextFunc](nil))
}

func TestAsHandler(t *testing.T) {
	t.Parallel()

	h, ok := asyncware.AsHandler[*request, *response, asyncware.NextFunc](
		asyncware.Handler[*request, *response, asyncware.NextFunc](func(*request, *response, asyncware.NextFunc) any { return "x" }),
	)
	require.True(t, ok)
	assert.Equal(t, "x", h(&request{}, &response{}, func(error) {}))

	h, ok = asyncware.AsHandler[*request, *response, asyncware.NextFunc](
		func(*request, *response, asyncware.NextFunc) error { return nil },
	)
	require.True(t, ok)
	assert.Nil(t, h(&request{}, &response{}, func(error) {}), "nil error must become a nil value")

	_, ok = asyncware.AsHandler[*request, *response, asyncware.NextFunc](
		func(error, *request, *response, asyncware.NextFunc) any { return nil },
	)
	assert.False(t, ok, "error handler shape is not a handler")

	_, ok = asyncware.AsHandler[*request, *response, asyncware.NextFunc](42)
	assert.False(t, ok)
}

func TestAsErrorHandler(t *testing.T) {
	t.Parallel()

	errFailed := errors.New("failed")

	tests := []struct {
		name string
		v    any
		ok   bool
		want any
	}{
		{
			name: "named type",
			v: asyncware.ErrorHandler[*request, *response, asyncware.NextFunc](
				func(err error, _ *request, _ *response, _ asyncware.NextFunc) any { return err },
			),
			ok:   true,
			want: errFailed,
		},
		{
			name: "returns any",
			v:    func(err error, _ *request, _ *response, _ asyncware.NextFunc) any { return "handled" },
			ok:   true,
			want: "handled",
		},
		{
			name: "returns error",
			v:    func(err error, _ *request, _ *response, _ asyncware.NextFunc) error { return err },
			ok:   true,
			want: errFailed,
		},
		{
			name: "returns nothing",
			v:    func(error, *request, *response, asyncware.NextFunc) {},
			ok:   true,
		},
		{
			name: "handler shape",
			v:    func(*request, *response, asyncware.NextFunc) any { return nil },
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, ok := asyncware.AsErrorHandler[*request, *response, asyncware.NextFunc](tt.v)
			require.Equal(t, tt.ok, ok)
			if !ok {
				assert.Nil(t, h)
				return
			}
			assert.Equal(t, tt.want, h(errFailed, &request{}, &response{}, func(error) {}))
		})
	}
}

package asyncware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/asyncware/core/logger"
)

// ErrUnknownFailure is forwarded when a deferred value fails with a nil error.
var ErrUnknownFailure = errors.New("asyncware: deferred value failed without an error")

// Failure origins recorded in debug logs.
const (
	originPanic    = "panic"
	originSync     = "sync"
	originDeferred = "deferred"
)

// CreateMiddleware wraps h so that every failure it produces is forwarded to next.
//
// A panic or a returned error is forwarded before the adapted call returns.
// A returned Deferred gets a failure callback that forwards its error once the
// deferred work fails; the adapter never waits for it. Successful completion is
// left to h, which must call next or write the response itself.
//
// Returned values are otherwise ignored, with one exception: a non-nil error
// returned by h is forwarded to next as a synchronous failure, exactly as if h
// had panicked with it. A returned value that is both an error and a Deferred
// is treated as a Deferred. The adapted handler always returns nil.
//
// A nil handler is rejected with ErrHandlerRequired.
//
// Example:
//
//	h, err := asyncware.CreateMiddleware(func(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
//		return async.Exec(r.Context(), r, func(ctx context.Context, r *http.Request) error {
//			return loadUser(ctx, r)
//		})
//	})
func CreateMiddleware[Req, Res any, N ~func(error)](h Handler[Req, Res, N], opts ...Option) (Handler[Req, Res, N], error) {
	if !IsHandler(h) {
		return nil, ErrHandlerRequired
	}

	cfg := newConfig(opts)

	return func(req Req, res Res, next N) any {
		forward(cfg.logger, next, func() any {
			return h(req, res, next)
		})
		return nil
	}, nil
}

// MustCreateMiddleware is like CreateMiddleware but panics on a nil handler.
// Intended for wiring code where a nil handler is a programming error.
func MustCreateMiddleware[Req, Res any, N ~func(error)](h Handler[Req, Res, N], opts ...Option) Handler[Req, Res, N] {
	m, err := CreateMiddleware(h, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// CreateErrorMiddleware applies the same forwarding rules to an error handler.
// Failures of the error handler itself are passed to next.
func CreateErrorMiddleware[Req, Res any, N ~func(error)](h ErrorHandler[Req, Res, N], opts ...Option) (ErrorHandler[Req, Res, N], error) {
	if !IsErrorHandler(h) {
		return nil, ErrHandlerRequired
	}

	cfg := newConfig(opts)

	return func(err error, req Req, res Res, next N) any {
		forward(cfg.logger, next, func() any {
			return h(err, req, res, next)
		})
		return nil
	}, nil
}

// MustCreateErrorMiddleware is like CreateErrorMiddleware but panics on a nil handler.
func MustCreateErrorMiddleware[Req, Res any, N ~func(error)](h ErrorHandler[Req, Res, N], opts ...Option) ErrorHandler[Req, Res, N] {
	m, err := CreateErrorMiddleware(h, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Adapt narrows an untyped value with AsHandler and wraps it with CreateMiddleware.
// Every value that is not a supported handler function fails with ErrHandlerRequired.
func Adapt[Req, Res any, N ~func(error)](v any, opts ...Option) (Handler[Req, Res, N], error) {
	h, ok := AsHandler[Req, Res, N](v)
	if !ok {
		return nil, ErrHandlerRequired
	}
	return CreateMiddleware(h, opts...)
}

// forward runs call and routes its failure, if any, to next.
func forward[N ~func(error)](log *slog.Logger, next N, call func() any) {
	out, err := invoke(call)
	if err != nil {
		report(log, originPanic, err)
		next(err)
		return
	}

	if IsDeferred(out) {
		out.(Deferred).Catch(func(err error) {
			if err == nil {
				err = ErrUnknownFailure
			}
			report(log, originDeferred, err)
			next(err)
		})
		return
	}

	if err, ok := out.(error); ok && !isNilValue(err) {
		report(log, originSync, err)
		next(err)
	}
}

// invoke calls fn and converts a panic into an error.
func invoke(fn func() any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
		}
	}()
	return fn(), nil
}

func report(log *slog.Logger, origin string, err error) {
	log.LogAttrs(context.Background(), slog.LevelDebug, "handler failure forwarded",
		logger.Origin(origin),
		logger.Error(err),
	)
}

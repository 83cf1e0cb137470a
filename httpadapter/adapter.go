package httpadapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/asyncware"
	"github.com/dmitrymomot/asyncware/core/logger"
)

// RequestIDHeader is the header read when logging failed requests.
const RequestIDHeader = "X-Request-ID"

// Handler is a continuation-style net/http handler.
type Handler = asyncware.Handler[*http.Request, http.ResponseWriter, asyncware.NextFunc]

// ErrorHandler is a continuation-style net/http error handler.
type ErrorHandler = asyncware.ErrorHandler[*http.Request, http.ResponseWriter, asyncware.NextFunc]

// finalizer is implemented by deferred values that report settlement,
// such as the futures in pkg/async.
type finalizer interface {
	Finally(fn func())
}

type trackerKey struct{}

// tracker carries per-run state between the handler and the bridge:
// the handler's return value and the context handed downstream.
type tracker struct {
	mu  sync.Mutex
	out any
	ctx context.Context
}

func (t *tracker) context() context.Context {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx
}

type outcome struct {
	err    error
	called bool
	// expired is set when the request context ended before the handler completed.
	expired bool
	ctx     context.Context
}

// SetValue stores a request-scoped value for the handlers that run after the
// current one. A continuation cannot pass a new *http.Request downstream, so
// the bridge applies the stored values to the request it hands to the next
// handler. Returns false if r is not served by Middleware or Endpoint.
func SetValue(r *http.Request, key, val any) bool {
	t, ok := r.Context().Value(trackerKey{}).(*tracker)
	if !ok {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx = context.WithValue(t.ctx, key, val)
	return true
}

type bridge struct {
	handler         Handler
	errorHandler    ErrorHandler
	rawErrorHandler ErrorHandler
	respond         ErrorResponder
	logger          *slog.Logger
	adapterOpts     []asyncware.Option
}

// Middleware turns h into net/http middleware.
//
// The request is held open until h completes it: by calling next, by writing
// a response, or by settling the deferred value it returned. next(nil) runs
// the downstream handler, next(err) runs the error handler or responder. If
// the request context ends first, the context error is responded instead, the
// error handler is skipped and later writes from h are dropped. A deferred value
// without Finally completes the request with its first write.
func Middleware(h Handler, opts ...Option) (func(http.Handler) http.Handler, error) {
	b, err := newBridge(h, opts)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.serve(w, r, next)
		})
	}, nil
}

// MustMiddleware is like Middleware but panics on error.
func MustMiddleware(h Handler, opts ...Option) func(http.Handler) http.Handler {
	mw, err := Middleware(h, opts...)
	if err != nil {
		panic(err)
	}
	return mw
}

// Endpoint turns h into an http.Handler with no downstream handler.
// Calling next(nil) from an endpoint responds with ErrNotFound.
func Endpoint(h Handler, opts ...Option) (http.Handler, error) {
	b, err := newBridge(h, opts)
	if err != nil {
		return nil, err
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.serve(w, r, nil)
	}), nil
}

// MustEndpoint is like Endpoint but panics on error.
func MustEndpoint(h Handler, opts ...Option) http.Handler {
	e, err := Endpoint(h, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func newBridge(h Handler, opts []Option) (*bridge, error) {
	if !asyncware.IsHandler(h) {
		return nil, fmt.Errorf("httpadapter: %w", asyncware.ErrHandlerRequired)
	}

	b := &bridge{
		respond: RespondError,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}

	adapted, err := asyncware.CreateMiddleware(track(h), b.adapterOpts...)
	if err != nil {
		return nil, fmt.Errorf("httpadapter: %w", err)
	}
	b.handler = adapted

	if b.rawErrorHandler != nil {
		eh, err := asyncware.CreateErrorMiddleware(trackError(b.rawErrorHandler), b.adapterOpts...)
		if err != nil {
			return nil, fmt.Errorf("httpadapter: error handler: %w", err)
		}
		b.errorHandler = eh
	}

	return b, nil
}

func (b *bridge) serve(w http.ResponseWriter, r *http.Request, downstream http.Handler) {
	ww, nested := w.(*responseWriter)
	if !nested {
		ww = newResponseWriter(w)
		defer ww.finish()
	}

	res := b.run(ww, r, func(r *http.Request, next asyncware.NextFunc) {
		b.handler(r, ww, next)
	})

	if res.expired {
		// Deferred work may still hold the pending headers; only the bridge responds
		b.respondError(ww, r, res.err)
		return
	}
	ww.commit()

	switch {
	case res.err != nil:
		b.fail(ww, r, res.err, downstream)
	case res.called:
		b.advance(ww, r.WithContext(res.ctx), downstream)
	}
}

func (b *bridge) fail(w *responseWriter, r *http.Request, err error, downstream http.Handler) {
	if b.errorHandler == nil {
		b.respondError(w, r, err)
		return
	}

	res := b.run(w, r, func(r *http.Request, next asyncware.NextFunc) {
		b.errorHandler(err, r, w, next)
	})
	if !res.expired {
		w.commit()
	}

	switch {
	case res.err != nil:
		b.respondError(w, r, res.err)
	case res.called:
		b.advance(w, r.WithContext(res.ctx), downstream)
	}
}

func (b *bridge) advance(w *responseWriter, r *http.Request, downstream http.Handler) {
	if downstream == nil {
		b.respondError(w, r, ErrNotFound)
		return
	}
	downstream.ServeHTTP(w, r)
}

func (b *bridge) respondError(w *responseWriter, r *http.Request, err error) {
	if out := w.seal(); out != nil {
		b.respond(out, r, err)
	}

	b.logger.LogAttrs(context.WithoutCancel(r.Context()), slog.LevelError, "request failed",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.StatusCode(w.Status()),
		logger.RequestID(requestID(w, r)),
		logger.Error(err),
	)
}

// run invokes call and waits until the handler completes the request.
func (b *bridge) run(w *responseWriter, r *http.Request, call func(*http.Request, asyncware.NextFunc)) outcome {
	t := &tracker{ctx: r.Context()}
	tr := r.WithContext(context.WithValue(r.Context(), trackerKey{}, t))

	// First call wins; the adapter does not deduplicate handler misuse
	signal := make(chan outcome, 1)
	var once sync.Once
	next := func(err error) {
		once.Do(func() {
			signal <- outcome{err: err, called: true, ctx: t.context()}
		})
	}

	call(tr, next)

	select {
	case res := <-signal:
		return res
	default:
	}

	// Without a settlement signal the first write completes the request
	settled := make(chan struct{})
	wrote := w.wrote

	t.mu.Lock()
	out := t.out
	t.mu.Unlock()

	if !asyncware.IsDeferred(out) {
		if w.Written() {
			return outcome{}
		}
	} else if f, ok := out.(finalizer); ok {
		wrote = nil
		f.Finally(func() { close(settled) })
	}

	select {
	case res := <-signal:
		return res
	case <-wrote:
		return outcome{}
	case <-settled:
		// Failure callbacks were registered before Finally and have already run
		select {
		case res := <-signal:
			return res
		default:
			return outcome{}
		}
	case <-r.Context().Done():
		if w.Written() {
			return outcome{}
		}
		return outcome{err: r.Context().Err(), expired: true}
	}
}

func track(h Handler) Handler {
	return func(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
		out := h(r, w, next)
		record(r, out)
		return out
	}
}

func trackError(h ErrorHandler) ErrorHandler {
	return func(err error, r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
		out := h(err, r, w, next)
		record(r, out)
		return out
	}
}

func record(r *http.Request, out any) {
	if t, ok := r.Context().Value(trackerKey{}).(*tracker); ok {
		t.mu.Lock()
		t.out = out
		t.mu.Unlock()
	}
}

func requestID(w *responseWriter, r *http.Request) string {
	if id := w.headerValue(RequestIDHeader); id != "" {
		return id
	}
	return r.Header.Get(RequestIDHeader)
}

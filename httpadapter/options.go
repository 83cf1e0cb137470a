package httpadapter

import (
	"log/slog"

	"github.com/dmitrymomot/asyncware"
)

// Option configures a bridge created by Middleware or Endpoint.
type Option func(*bridge)

// WithErrorHandler sets a continuation-style error handler.
// It is adapted like any other handler: calling next(err) hands the error to
// the ErrorResponder, calling next(nil) resumes the downstream handler.
// It is not run when the request context ended before the handler completed.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *bridge) {
		b.rawErrorHandler = h
	}
}

// WithErrorResponder replaces RespondError as the final error writer.
func WithErrorResponder(fn ErrorResponder) Option {
	return func(b *bridge) {
		if fn != nil {
			b.respond = fn
		}
	}
}

// WithLogger sets the logger for error responses. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithAdapterOptions passes options to asyncware.CreateMiddleware.
func WithAdapterOptions(opts ...asyncware.Option) Option {
	return func(b *bridge) {
		b.adapterOpts = append(b.adapterOpts, opts...)
	}
}

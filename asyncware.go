// Package asyncware adapts continuation-style request handlers so that every
// failure they produce reaches the pipeline's error channel. A handler may fail
// synchronously (panic or returned error) or later, through a deferred value it
// returns; both paths end in a single next(err) call.
package asyncware

// NextFunc is the default continuation passed to handlers.
// Calling it with nil advances the pipeline, calling it with an error routes
// control to the pipeline's error handlers.
type NextFunc func(err error)

// Handler is a continuation-style request handler.
// The returned value is either an immediate output (possibly nil), an error
// signalling a synchronous failure, or a Deferred that may still fail after
// the handler returns.
type Handler[Req, Res any, N ~func(error)] func(req Req, res Res, next N) any

// ErrorHandler is a continuation-style handler invoked with a pipeline error.
// It differs from Handler only by the leading error parameter.
type ErrorHandler[Req, Res any, N ~func(error)] func(err error, req Req, res Res, next N) any

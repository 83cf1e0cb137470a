// Package middleware provides continuation-style handlers for common
// cross-cutting concerns, ready to be mounted with httpadapter.Middleware.
//
// # Request ID
//
// RequestID assigns a unique identifier to every request. The identifier is
// stored in the request context through httpadapter.SetValue, where downstream
// handlers read it with GetRequestID, and written to the X-Request-ID response
// header, where httpadapter picks it up for its error logs. The inbound request
// headers are left untouched.
//
//	import (
//		"github.com/dmitrymomot/asyncware/httpadapter"
//		"github.com/dmitrymomot/asyncware/middleware"
//	)
//
//	requestID := httpadapter.MustMiddleware(middleware.RequestID())
//	http.ListenAndServe(":8080", requestID(mux))
//
// Incoming identifiers can be trusted, for example behind a proxy that already
// sets them:
//
//	middleware.RequestIDWithConfig(middleware.RequestIDConfig{
//		UseExisting: true,
//		Skip: func(r *http.Request) bool {
//			return r.URL.Path == "/healthz"
//		},
//	})
package middleware

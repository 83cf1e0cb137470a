package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/asyncware"
	"github.com/dmitrymomot/asyncware/httpadapter"
)

type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: httpadapter.RequestIDHeader)
	HeaderName string
	// UseExisting determines whether to use an existing request ID from the incoming request
	UseExisting bool
}

// RequestID creates a request ID handler with default configuration.
// It generates a new UUID for each request, stores it in the request context
// for downstream handlers and sets it on the response header.
func RequestID() httpadapter.Handler {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID handler with custom configuration.
// The handler always completes by calling next(nil), so it can be placed in
// front of any chain built with httpadapter.Middleware.
func RequestIDWithConfig(cfg RequestIDConfig) httpadapter.Handler {
	if cfg.HeaderName == "" {
		cfg.HeaderName = httpadapter.RequestIDHeader
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
		if cfg.Skip != nil && cfg.Skip(r) {
			next(nil)
			return nil
		}

		var requestID string

		// Try to use existing request ID from incoming headers if configured
		if cfg.UseExisting {
			requestID = r.Header.Get(cfg.HeaderName)
		}

		if requestID == "" {
			requestID = cfg.Generator()
		}

		httpadapter.SetValue(r, requestIDKey{}, requestID)
		w.Header().Set(cfg.HeaderName, requestID)

		next(nil)
		return nil
	}
}

// GetRequestID retrieves the request ID assigned by RequestID.
// Returns the request ID and a boolean indicating whether it was found.
// Inbound headers are never consulted.
func GetRequestID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

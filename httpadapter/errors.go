package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Error represents a structured error response that implements the error interface.
type Error struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e Error) WithDetails(details map[string]any) Error {
	e.Details = details
	return e
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest          = newError(http.StatusBadRequest, "BAD_REQUEST")
	ErrUnauthorized        = newError(http.StatusUnauthorized, "UNAUTHORIZED")
	ErrForbidden           = newError(http.StatusForbidden, "FORBIDDEN")
	ErrNotFound            = newError(http.StatusNotFound, "NOT_FOUND")
	ErrConflict            = newError(http.StatusConflict, "CONFLICT")
	ErrTooManyRequests     = newError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS")
	ErrInternalServerError = newError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR")
	ErrServiceUnavailable  = newError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
	ErrGatewayTimeout      = newError(http.StatusGatewayTimeout, "GATEWAY_TIMEOUT")
)

// ErrResponseDetached is returned by writes issued after the request finished.
var ErrResponseDetached = errors.New("httpadapter: response already finished")

func newError(status int, code string) Error {
	return Error{Status: status, Code: code, Message: http.StatusText(status)}
}

// ErrorResponder writes an error response for err.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// AsError maps err to the Error that RespondError would write.
// Context deadlines become 504, cancellations 503, unknown errors 500.
func AsError(err error) Error {
	var appErr Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, context.DeadlineExceeded):
		return ErrGatewayTimeout
	case errors.Is(err, context.Canceled):
		return ErrServiceUnavailable
	default:
		return ErrInternalServerError
	}
}

// RespondError is the default ErrorResponder. It writes AsError(err) as JSON
// unless a response has already been written.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	// Prevent double-writing responses which causes HTTP protocol errors
	if alreadyWritten(w) {
		return
	}

	e := AsError(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

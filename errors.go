package asyncware

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrHandlerRequired is returned when a nil or non-callable value is adapted.
var ErrHandlerRequired = errors.New("asyncware: middleware must be a request handler")

// PanicError wraps a panic value that is neither an error nor a string.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any
	// Stack is the goroutine stack captured at recovery time.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// toError converts a recovered panic value to an error.
// Errors pass through unchanged so next receives the exact value raised.
func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return &PanicError{Value: e, Stack: debug.Stack()}
	}
}

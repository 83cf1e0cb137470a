package asyncware

import "reflect"

// Deferred is a value whose work completes after the handler that returned it.
// Catch registers a one-shot callback invoked if and when the work fails.
// Implementations must not invoke onFailure more than once.
type Deferred interface {
	Catch(onFailure func(err error))
}

// IsDeferred reports whether v is a usable Deferred value.
// Nil interfaces and typed nil values are never deferred.
func IsDeferred(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Deferred); !ok {
		return false
	}
	return !isNilValue(v)
}

// isNilValue detects typed nils hidden behind a non-nil interface.
func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

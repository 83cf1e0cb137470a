package asyncware

// IsHandler reports whether h can be used as a pipeline handler.
// Any non-nil function qualifies; the check exists so callers can move from a
// generic handler value to the pipeline's own handler type without a cast.
func IsHandler[Req, Res any, N ~func(error)](h Handler[Req, Res, N]) bool {
	return h != nil
}

// IsErrorHandler reports whether h can be used as a pipeline error handler.
// Any non-nil function qualifies.
func IsErrorHandler[Req, Res any, N ~func(error)](h ErrorHandler[Req, Res, N]) bool {
	return h != nil
}

// AsHandler narrows an untyped value to a Handler.
// Accepted shapes are Handler itself and plain functions taking
// (Req, Res, N) and returning any, error or nothing.
func AsHandler[Req, Res any, N ~func(error)](v any) (Handler[Req, Res, N], bool) {
	var h Handler[Req, Res, N]

	switch fn := v.(type) {
	case Handler[Req, Res, N]:
		h = fn
	case func(Req, Res, N) any:
		h = fn
	case func(Req, Res, N) error:
		if fn != nil {
			h = func(req Req, res Res, next N) any {
				if err := fn(req, res, next); err != nil {
					return err
				}
				return nil
			}
		}
	case func(Req, Res, N):
		if fn != nil {
			h = func(req Req, res Res, next N) any {
				fn(req, res, next)
				return nil
			}
		}
	}

	return h, IsHandler(h)
}

// AsErrorHandler narrows an untyped value to an ErrorHandler.
// Accepted shapes mirror AsHandler with a leading error parameter.
func AsErrorHandler[Req, Res any, N ~func(error)](v any) (ErrorHandler[Req, Res, N], bool) {
	var h ErrorHandler[Req, Res, N]

	switch fn := v.(type) {
	case ErrorHandler[Req, Res, N]:
		h = fn
	case func(error, Req, Res, N) any:
		h = fn
	case func(error, Req, Res, N) error:
		if fn != nil {
			h = func(err error, req Req, res Res, next N) any {
				if herr := fn(err, req, res, next); herr != nil {
					return herr
				}
				return nil
			}
		}
	case func(error, Req, Res, N):
		if fn != nil {
			h = func(err error, req Req, res Res, next N) any {
				fn(err, req, res, next)
				return nil
			}
		}
	}

	return h, IsErrorHandler(h)
}

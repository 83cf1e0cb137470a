// Package httpadapter runs continuation-style handlers inside net/http.
//
// Handlers receive the request, the response writer and a continuation:
//
//	loadUser := func(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
//		return async.Exec(r.Context(), r, func(ctx context.Context, r *http.Request) error {
//			user, err := users.Find(ctx, r.PathValue("id"))
//			if err != nil {
//				return err // forwarded to the error handler
//			}
//			return json.NewEncoder(w).Encode(user)
//		})
//	}
//
//	mux.Handle("GET /users/{id}", httpadapter.MustEndpoint(loadUser))
//
// Every handler is wrapped with asyncware.CreateMiddleware, so panics,
// returned errors and failed deferred values all reach the error path.
//
// # Completing a Request
//
// net/http finishes a response when ServeHTTP returns, so the bridge waits
// until the handler completes the request in one of these ways:
//
//   - calling next(nil), which runs the downstream handler
//   - calling next(err), which runs the error handler or responder
//   - writing a response and returning a non-deferred value
//   - returning a deferred value that later settles (for values with Finally)
//   - writing a response from a deferred value without Finally
//
// If none happens before the request context ends, the context error is
// responded (504 for deadlines, 503 for cancellation) without consulting the
// error handler. From then on the bridge owns the response: writes from the
// handler are dropped with ErrResponseDetached and Header returns a throwaway
// map. Headers set by a handler stay pending until it writes or completes the
// request, so an abandoned handler never touches the headers being sent.
//
// # Request Values
//
// A continuation cannot hand a new *http.Request to the next handler. SetValue
// stores a value that the bridge attaches to the request context it passes
// downstream:
//
//	httpadapter.SetValue(r, userKey{}, user)
//	next(nil)
//
// # Error Handling
//
// Errors are rendered by RespondError unless replaced with WithErrorResponder.
// Error values of type Error keep their status and code; anything else becomes
// a 500. A continuation-style error handler can be installed with
// WithErrorHandler:
//
//	onError := func(err error, r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
//		if errors.Is(err, sql.ErrNoRows) {
//			next(httpadapter.ErrNotFound)
//			return nil
//		}
//		next(err)
//		return nil
//	}
//
//	mw := httpadapter.MustMiddleware(auth, httpadapter.WithErrorHandler(onError))
package httpadapter

// Package async provides futures that continuation-style handlers return as
// deferred values.
//
// A handler built for asyncware cannot block until its work finishes. It
// starts the work with Async or Exec, wires the outcome to its continuation
// through callbacks and returns the future. The future satisfies
// asyncware.Deferred through Catch, so the adapter attaches its own failure
// callback, and httpadapter holds the request open until Finally fires:
//
//	func loadUser(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
//		f := async.Async(r.Context(), r.PathValue("id"), users.Find)
//		f.Then(func(u User) {
//			httpadapter.SetValue(r, userKey{}, u)
//			next(nil)
//		})
//		return f
//	}
//
// A failed future reaches next(err) without any Catch written by the handler.
//
// # Callback Ordering
//
// Then, Catch and Finally run after the future settles, on a dispatcher
// goroutine, in the order they were registered. They never run inside the
// registering call, even for futures created with Resolve or Reject, so a
// handler can return before any of its callbacks fire. A panicking callback is
// discarded and does not stop the remaining ones. Because the adapter
// registers Catch before httpadapter registers Finally, failures are always
// delivered before the settlement signal.
//
// # Futures With and Without Results
//
// Future[U] carries a value; ExecFuture only reports an error:
//
//	total := async.Async(ctx, cart, priceCart)  // *Future[Money]
//	audit := async.Exec(ctx, event, writeAudit) // *ExecFuture
//
// Resolve and Reject build already settled futures, useful for cache hits and
// validation failures that still go through the deferred path.
//
// # Waiting
//
// Code outside a handler chain may block on results instead:
//
//	price, err := total.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		// still running
//	}
//
// WaitAll and ExecAll collect every result and return the first error.
// WaitAny and ExecAny return the index of the first future to settle.
//
// # Errors
//
//   - ErrTimeout: AwaitWithTimeout exceeded its duration
//   - ErrNoFutures: WaitAny or ExecAny was called with no futures
//   - ErrPanic: wraps a panic raised by the asynchronous function
//
// # Context
//
// If the context is canceled before the function starts, the future rejects
// with the context error and the function is never called. A future settles
// exactly once; later completions are ignored.
package async

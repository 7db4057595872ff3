// Package async runs functions in the background and hands back a typed Future.
//
// Async starts the supplied function in its own goroutine and returns
// immediately. The caller can block on Await, bound the wait with
// AwaitContext, select on Done, or poll IsComplete. Callers that never look at
// the result are fine too: the goroutine finishes on its own.
//
//	future := async.Async(ctx, req, func(ctx context.Context, r Request) (Outcome, error) {
//		return engine.Attempt(ctx, r), nil
//	})
//
//	// later, for example during shutdown
//	outcome, err := future.AwaitContext(shutdownCtx)
//
// A panic in the task does not crash the process. It is recovered and the
// future completes with an error wrapping ErrPanic.
//
// If ctx is already canceled when Async is called the function is not run and
// the future completes with ctx.Err(). Pass context.WithoutCancel(ctx) for
// work that must outlive the caller.
package async

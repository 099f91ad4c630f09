// Package async runs functions concurrently and collects their results.
//
// A Future is obtained from Async (one call) or Map (one call per input).
// The results of several futures are gathered with either Settle, which
// waits for every future and reports each outcome in input order, or All,
// which returns as soon as any future fails.
//
//	futures := async.Map(ctx, messages, send)
//	for i, r := range async.Settle(futures...) {
//	    if r.Err != nil {
//	        log.Printf("message %d failed: %v", i, r.Err)
//	    }
//	}
//
// If the context is already cancelled when the goroutine starts, the function
// is not invoked and the Future completes with the context error.
package async

// Package worker runs flowlight transitions off the caller's goroutine.
//
// The execution service itself is synchronous: Execute does all of its work
// on the calling goroutine. A Worker lets a host hand transition requests to
// a queue instead and have them executed one at a time by a background
// goroutine. Because one Worker processes its queue sequentially, every
// request routed to the same Worker is serialized, which is how the root
// package's LocalRunner keeps concurrent requests for one process instance
// from interleaving their handler side effects.
//
// # Failure handling
//
// Execute errors are delivered on the channel returned by EnqueueTransition
// and logged through the configured slog.Logger. They are not retried:
// definition errors and transition errors cannot be fixed by retrying, and
// handler failures may already have committed earlier branches.
//
// # Usage
//
// Most users should go through flowlight.NewLocalRunner. The worker package
// is useful when wiring a custom queue or a custom execution service.
package worker

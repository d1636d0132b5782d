// Package parallel provides a bounded fan-out/fan-in map used by the
// enrichment and reconciliation loops.
//
// Workers return values instead of writing into a shared accumulator; the
// caller receives the collected results once every in-flight worker has
// finished. Output order is deliberately unspecified, so callers must treat
// the result as an unordered collection.
//
// Cancellation is cooperative: once the context is done no further items are
// dispatched, but workers already running are allowed to complete.
package parallel

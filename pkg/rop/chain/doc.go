// Package chain runs an ordered list of handlers against a clonable context.
//
// Handlers run one at a time in declaration order. The first failure stops
// the run; handlers after it are never invoked. A panicking handler is
// reported as an ordinary failure.
//
// Key types:
// - Executor: holds live handlers and runs them (Execute, ExecuteWithHistory)
// - Service: binds declared step ids to a Registry, resolving them once
// - HistoryResult: final Result plus timeline, snapshots and unapplied steps
// - InOut: import -> chain -> export around any Executor or Service
// - Builder: registers handlers and declares a Service in one pass
// - Sink: optional instrumentation events (see package observe)
package chain

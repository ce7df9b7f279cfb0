// Package lite runs one chain over many independent inputs concurrently.
//
// Common usage:
// - Run: execute a chain once per input on a fixed number of lines
// - RunWithHistory: same, keeping each run's timeline
//
// Results come back in input order. Steps inside a single run are never
// parallelized; only whole runs are spread across lines. Inputs left behind
// when ctx ends fail with ErrNotDispatched.
package lite

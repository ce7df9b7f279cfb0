// Package core contains run plumbing: options carried on context.Context
// (history snapshots, worker count) and the locomotive that drives a
// channel of inputs through a fixed number of worker lines.
package core

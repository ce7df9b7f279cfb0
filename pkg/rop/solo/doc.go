// Package solo contains single-value, synchronous ROP primitives that operate
// on Result[T]. Chain handlers and the in/out executors are built from them.
//
// Highlights:
// - Succeed/Fail/Failure: construct Result[T]
// - Validate/AndValidate: apply validation producing failure on invalid input
// - Switch: move from Result[In] to Result[Out]
// - Map: transform successful values
// - Try: call a function (Out, error) and convert error or panic to failure
// - Tee/FailOnError: side-effect helpers
// - Finally: reduce to a concrete value via success/error handlers
package solo

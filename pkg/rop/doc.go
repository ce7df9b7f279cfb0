// Package rop defines Result[T], the success-or-failure value that every
// handler and chain in this module returns, plus a few helpers for working
// with the errors it carries.
package rop

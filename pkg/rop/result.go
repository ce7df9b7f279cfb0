package rop

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Result is either a success holding a value or a failure holding an error.
// The zero Result is neither and reports IsEmpty.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		err:       nil,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result[T]{
		err:       err,
		isSuccess: false,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Failure builds a failed result from a plain reason.
func Failure[T any](reason string) Result[T] {
	return Fail[T](errors.New(reason))
}

// FailFrom carries the failure of one result over to another result type.
func FailFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:       from.err,
		isSuccess: false,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

// Flatten collapses a nested result. An outer failure wins over the inner one.
func Flatten[T any](r Result[Result[T]]) Result[T] {
	if !r.IsSuccess() {
		return FailFrom[Result[T], T](r)
	}
	return r.Result()
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

// Reason is the failure text, empty on success.
func (r Result[T]) Reason() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && r.err != nil
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

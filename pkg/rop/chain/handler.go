package chain

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ib-77/chainer/pkg/rop"
	"github.com/ib-77/chainer/pkg/rop/solo"
)

// Clonable is the contract every chain context satisfies. Clone must return
// an independent deep copy: mutating the copy never affects the original.
type Clonable[C any] interface {
	Clone() C
}

// Handler is a single step of a chain. It may mutate c in place and return
// it, return a replacement value, or fail. The success value is what the
// next handler receives.
type Handler[C any] interface {
	Handle(ctx context.Context, c C) rop.Result[C]
}

// Named lets a handler choose the name reported in history and events.
type Named interface {
	Name() string
}

// NameOf returns the name of h, or its Go type when it is not Named.
func NameOf[C any](h Handler[C]) string {
	if n, ok := h.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}

type funcHandler[C any] struct {
	name string
	fn   func(ctx context.Context, c C) rop.Result[C]
}

func (f funcHandler[C]) Name() string { return f.name }

func (f funcHandler[C]) Handle(ctx context.Context, c C) rop.Result[C] {
	return f.fn(ctx, c)
}

// Func adapts a function into a named Handler.
func Func[C any](name string, fn func(ctx context.Context, c C) rop.Result[C]) Handler[C] {
	return funcHandler[C]{name: name, fn: fn}
}

// Mutate adapts an infallible transformation into a named Handler.
func Mutate[C any](name string, fn func(ctx context.Context, c C) C) Handler[C] {
	return Func(name, func(ctx context.Context, c C) rop.Result[C] {
		return solo.Map(ctx, solo.Succeed(c), fn)
	})
}

// Validate adapts a predicate into a named Handler that fails with errMsg
// when the predicate does not hold.
func Validate[C any](name string, validate func(ctx context.Context, c C) (valid bool, errMsg string)) Handler[C] {
	return Func(name, func(ctx context.Context, c C) rop.Result[C] {
		return solo.Validate(ctx, c, validate)
	})
}

// as reports a handler under a fixed name, used for handlers resolved by id.
type as[C any] struct {
	name string
	Handler[C]
}

func (a as[C]) Name() string { return a.name }

func newContext[C any]() C {
	var zero C
	t := reflect.TypeOf((*C)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface().(C)
	}
	return zero
}

package core

import (
	"context"
	"sync"
)

// Indexed tags a value with its position in the original input.
type Indexed[T any] struct {
	Index int
	Value T
}

// ToChanIndexed feeds values into a channel in order and closes it. It stops
// early when ctx is done.
func ToChanIndexed[T any](ctx context.Context, values []T) <-chan Indexed[T] {
	in := make(chan Indexed[T])

	go func() {
		defer close(in)

		for i, v := range values {
			if ctx.Err() != nil {
				return
			}

			select {
			case in <- Indexed[T]{Index: i, Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// Locomotive drains inputCh through engine until the channel closes or ctx
// is done. Run several locomotives on one channel to get that many lines.
func Locomotive[T any](ctx context.Context, inputCh <-chan T,
	engine func(ctx context.Context, input T), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}
			engine(ctx, in)
		}
	}
}

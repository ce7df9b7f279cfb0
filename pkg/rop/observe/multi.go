package observe

import (
	"context"

	"github.com/ib-77/chainer/pkg/rop/chain"
)

// Multi fans every event out to all sinks, in order. Nil sinks are skipped
// and a panic in one sink does not reach the others.
func Multi(sinks ...chain.Sink) chain.Sink {
	return chain.SinkFunc(func(ctx context.Context, e chain.Event) {
		for _, s := range sinks {
			if s != nil {
				deliver(ctx, s, e)
			}
		}
	})
}

// deliver keeps a panicking sink from starving the ones after it.
func deliver(ctx context.Context, s chain.Sink, e chain.Event) {
	defer func() { _ = recover() }()
	s.Observe(ctx, e)
}

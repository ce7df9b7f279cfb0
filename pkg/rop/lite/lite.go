package lite

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/chainer/pkg/rop"
	"github.com/ib-77/chainer/pkg/rop/chain"
	"github.com/ib-77/chainer/pkg/rop/core"
)

var ErrNotDispatched = errors.New("run not dispatched")

// Run executes runner once per input on `lines` workers and returns the
// results in input order. Steps inside each run stay sequential. The worker
// count can be overridden with core.WithWorkerOptions. Inputs never
// dispatched because ctx ended fail with ctx's error.
func Run[C any](ctx context.Context, runner chain.Runner[C], inputs []C, lines int) []rop.Result[C] {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]rop.Result[C], len(inputs))

	dispatched := drive(ctx, inputs, lines, func(ctx context.Context, in core.Indexed[C]) {
		results[in.Index] = runner.Execute(ctx, in.Value)
	})

	for i, ok := range dispatched {
		if !ok {
			results[i] = rop.Fail[C](notDispatched(ctx))
		}
	}
	return results
}

// RunWithHistory is Run with ExecuteWithHistory. An input that was never
// dispatched gets a failed result with every step unapplied.
func RunWithHistory[C any](ctx context.Context, runner chain.Runner[C], inputs []C,
	lines int) []*chain.HistoryResult[C] {

	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]*chain.HistoryResult[C], len(inputs))

	dispatched := drive(ctx, inputs, lines, func(ctx context.Context, in core.Indexed[C]) {
		results[in.Index] = runner.ExecuteWithHistory(ctx, in.Value)
	})

	for i, ok := range dispatched {
		if ok {
			continue
		}
		steps, now := runner.Steps(), time.Now()
		results[i] = &chain.HistoryResult[C]{
			Result: rop.Fail[C](notDispatched(ctx)),
			Timeline: chain.Timeline[C]{
				RunID:          uuid.New(),
				Chain:          runner.Name(),
				History:        []chain.StepRecord[C]{},
				DeclaredSteps:  append([]string{}, steps...),
				UnappliedSteps: append([]string{}, steps...),
				Start:          now,
				End:            now,
			},
		}
	}
	return results
}

// drive runs engine over inputs and reports which indexes it reached. Each
// index is written by exactly one line.
func drive[C any](ctx context.Context, inputs []C, lines int,
	engine func(ctx context.Context, in core.Indexed[C])) []bool {

	lines = core.GetWorkerMaxCount(ctx, lines)
	if lines < 1 {
		lines = 1
	}

	dispatched := make([]bool, len(inputs))
	inputCh := core.ToChanIndexed(ctx, inputs)
	wg := &sync.WaitGroup{}

	for range lines {
		wg.Add(1)
		go core.Locomotive(ctx, inputCh, func(ctx context.Context, in core.Indexed[C]) {
			dispatched[in.Index] = true
			engine(ctx, in)
		}, wg)
	}

	wg.Wait()
	return dispatched
}

func notDispatched(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrNotDispatched, err)
	}
	return ErrNotDispatched
}

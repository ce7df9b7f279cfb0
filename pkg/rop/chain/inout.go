package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/ib-77/chainer/pkg/rop"
	"github.com/ib-77/chainer/pkg/rop/solo"
)

// Runner is what both Executor and Service offer.
type Runner[C any] interface {
	Name() string
	Steps() []string
	Execute(ctx context.Context, c C) rop.Result[C]
	ExecuteWithHistory(ctx context.Context, c C) *HistoryResult[C]
}

// InOut wraps a chain with an import step that builds the context from an
// input and an export step that turns the final context into an output.
// Import and export errors or panics are reported as failures.
type InOut[C any, In, Out any] struct {
	chain   Runner[C]
	importF func(ctx context.Context, in In) (C, error)
	exportF func(ctx context.Context, c C) (Out, error)
}

func NewInOut[C any, In, Out any](chain Runner[C],
	importF func(ctx context.Context, in In) (C, error),
	exportF func(ctx context.Context, c C) (Out, error)) *InOut[C, In, Out] {

	return &InOut[C, In, Out]{
		chain: chain,
		importF: func(ctx context.Context, in In) (C, error) {
			c, err := importF(ctx, in)
			if err != nil {
				return c, fmt.Errorf("import: %w", err)
			}
			return c, nil
		},
		exportF: func(ctx context.Context, c C) (Out, error) {
			out, err := exportF(ctx, c)
			if err != nil {
				return out, fmt.Errorf("export: %w", err)
			}
			return out, nil
		},
	}
}

func (io *InOut[C, In, Out]) Execute(ctx context.Context, in In) rop.Result[Out] {
	imported := solo.Try(ctx, solo.Succeed(in), io.importF)
	return solo.Try(ctx, solo.Switch(ctx, imported, io.chain.Execute), io.exportF)
}

// InOutHistoryResult is the outcome of InOut.ExecuteWithHistory. The
// timeline covers the chain; End also covers the export.
type InOutHistoryResult[C, Out any] struct {
	Result rop.Result[Out]
	Timeline[C]
}

func (h *InOutHistoryResult[C, Out]) PrintOutput(includeLineBreaks bool) string {
	return printOutput(fmt.Sprintf("%T", *new(C)), h.Result.IsSuccess(), h.Result.Reason(), &h.Timeline, includeLineBreaks)
}

func (h *InOutHistoryResult[C, Out]) String() string {
	return h.PrintOutput(true)
}

func (io *InOut[C, In, Out]) ExecuteWithHistory(ctx context.Context, in In) *InOutHistoryResult[C, Out] {
	out := &InOutHistoryResult[C, Out]{}

	imported := solo.Try(ctx, solo.Succeed(in), io.importF)
	if !imported.IsSuccess() {
		steps := io.chain.Steps()
		out.Timeline = newTimeline[C](io.chain.Name(), steps)
		out.UnappliedSteps = append(out.UnappliedSteps, steps...)
		out.Result = rop.FailFrom[C, Out](imported)
		out.End = time.Now()
		return out
	}

	h := io.chain.ExecuteWithHistory(ctx, imported.Result())
	out.Timeline = h.Timeline
	out.Result = solo.Try(ctx, h.Result, io.exportF)
	out.End = time.Now()
	return out
}

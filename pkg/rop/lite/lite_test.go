package lite_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/ib-77/chainer/pkg/rop"
	"github.com/ib-77/chainer/pkg/rop/chain"
	"github.com/ib-77/chainer/pkg/rop/core"
	"github.com/ib-77/chainer/pkg/rop/lite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct{ text string }

func (l *line) Clone() *line {
	c := *l
	return &c
}

func shoutChain() *chain.Executor[*line] {
	return chain.NewExecutor([]chain.Handler[*line]{
		chain.Mutate("upper", func(_ context.Context, l *line) *line {
			l.text = strings.ToUpper(l.text)
			return l
		}),
		chain.Validate("not_empty", func(_ context.Context, l *line) (bool, string) {
			return l.text != "", "empty line"
		}),
	}, chain.WithName[*line]("shout"))
}

func inputs(texts ...string) []*line {
	out := make([]*line, 0, len(texts))
	for _, t := range texts {
		out = append(out, &line{text: t})
	}
	return out
}

func TestRun_KeepsInputOrder(t *testing.T) {
	t.Parallel()

	results := lite.Run[*line](context.Background(), shoutChain(), inputs("a", "", "c", "d", "e"), 3)
	require.Len(t, results, 5)

	assert.Equal(t, "A", results[0].Result().text)
	assert.True(t, results[1].IsFailure())
	assert.Equal(t, "empty line", results[1].Reason())
	assert.Equal(t, "C", results[2].Result().text)
	assert.Equal(t, "D", results[3].Result().text)
	assert.Equal(t, "E", results[4].Result().text)
}

func TestRun_WorkerOption(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	exec := chain.NewExecutor([]chain.Handler[*line]{
		chain.Func("track", func(_ context.Context, l *line) rop.Result[*line] {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			return rop.Success(l)
		}),
	})

	ctx := core.WithWorkerOptions(context.Background(), 1)
	results := lite.Run[*line](ctx, exec, inputs("a", "b", "c", "d"), 8)

	for _, r := range results {
		assert.True(t, r.IsSuccess())
	}
	assert.Equal(t, int32(1), peak.Load())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := lite.Run[*line](ctx, shoutChain(), inputs("a", "b"), 2)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.IsFailure())
		assert.True(t, errors.Is(r.Err(), lite.ErrNotDispatched))
		assert.True(t, errors.Is(r.Err(), context.Canceled))
	}
}

func TestRunWithHistory(t *testing.T) {
	t.Parallel()

	results := lite.RunWithHistory[*line](context.Background(), shoutChain(), inputs("x", ""), 2)
	require.Len(t, results, 2)

	assert.True(t, results[0].Result.IsSuccess())
	assert.Equal(t, []string{"upper", "not_empty"}, results[0].AppliedSteps())
	assert.Equal(t, "shout", results[0].Chain)

	assert.True(t, results[1].Result.IsFailure())
	assert.Equal(t, []string{"not_empty"}, results[1].UnappliedSteps)
}

func TestRunWithHistory_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := lite.RunWithHistory[*line](ctx, shoutChain(), inputs("a"), 1)
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Result.Err(), lite.ErrNotDispatched))
	assert.Equal(t, []string{"upper", "not_empty"}, results[0].UnappliedSteps)
	assert.Empty(t, results[0].History)
}

func TestRunWithHistory_UndispatchedTimelines(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := lite.RunWithHistory[*line](ctx, shoutChain(), inputs("a", "b"), 1)
	require.Len(t, results, 2)

	first, second := results[0], results[1]
	assert.NotEqual(t, uuid.Nil, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.False(t, first.Start.IsZero())
	assert.False(t, first.End.IsZero())
	assert.Equal(t, "shout", first.Chain)

	first.UnappliedSteps[0] = "changed"
	assert.Equal(t, "upper", first.DeclaredSteps[0])
	assert.Equal(t, "upper", second.UnappliedSteps[0])
}

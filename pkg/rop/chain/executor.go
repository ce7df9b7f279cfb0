package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/chainer/pkg/rop"
	"github.com/ib-77/chainer/pkg/rop/core"
)

var (
	ErrNoSteps       = errors.New("no steps configured")
	ErrHandlerPanic  = errors.New("handler panicked")
	ErrEmptyResult   = errors.New("handler returned an empty result")
	ErrNotRegistered = errors.New("was not registered")
)

// Executor runs an ordered list of handlers against a context, stopping at
// the first failure. Runs on the same Executor may overlap as long as the
// handlers tolerate it; AddHandler must not race with a run.
type Executor[C Clonable[C]] struct {
	handlers []Handler[C]
	settings[C]
}

func NewExecutor[C Clonable[C]](handlers []Handler[C], opts ...Option[C]) *Executor[C] {
	return &Executor[C]{
		handlers: append([]Handler[C]{}, handlers...),
		settings: newSettings(opts),
	}
}

// AddHandler appends h to the end of the chain.
func (e *Executor[C]) AddHandler(h Handler[C]) *Executor[C] {
	e.handlers = append(e.handlers, h)
	return e
}

func (e *Executor[C]) Name() string {
	return e.name
}

// Steps returns the handler names in execution order.
func (e *Executor[C]) Steps() []string {
	return namesOf(e.handlers)
}

// Execute runs the chain on c. A nil c is replaced by a fresh context.
// Successful handlers may have mutated c even when the result is a failure.
func (e *Executor[C]) Execute(ctx context.Context, c C) rop.Result[C] {
	return e.run(ctx, c, nil)
}

// ExecuteWithHistory runs the chain like Execute and also records a
// timeline. Every applied step gets a clone of the context unless the run
// context disables it with core.WithHistoryOptions. The failing step and
// everything after it are reported in UnappliedSteps.
func (e *Executor[C]) ExecuteWithHistory(ctx context.Context, c C) *HistoryResult[C] {
	out := &HistoryResult[C]{Timeline: newTimeline[C](e.name, nil)}
	out.Result = e.run(ctx, c, &out.Timeline)
	return out
}

func (e *Executor[C]) run(ctx context.Context, c C, t *Timeline[C]) rop.Result[C] {
	if ctx == nil {
		ctx = context.Background()
	}

	runID, start := uuid.New(), time.Now()
	if t != nil {
		runID, start = t.RunID, t.Start
	}

	if rop.IsNil(c) {
		c = e.newContext()
	}

	handlers := append([]Handler[C]{}, e.handlers...)
	names := namesOf(handlers)
	if t != nil {
		t.DeclaredSteps = append(t.DeclaredSteps[:0], names...)
	}

	emit(ctx, e.sink, Event{Phase: PhaseStart, Chain: e.name, RunID: runID})

	if len(handlers) == 0 {
		res := rop.Fail[C](ErrNoSteps)
		emit(ctx, e.sink, Event{Phase: PhaseFailure, Chain: e.name, RunID: runID, Reason: res.Reason()})
		return e.finish(ctx, runID, start, res, t)
	}

	clone := t != nil && core.IsCloneOnStepEnabled(ctx, true)

	for i, h := range handlers {
		name := names[i]
		emit(ctx, e.sink, Event{Phase: PhaseStepStart, Chain: e.name, RunID: runID, Step: name})

		stepStart := time.Now()
		res := invoke(ctx, h, name, c)
		stepEnd := time.Now()

		emit(ctx, e.sink, Event{Phase: PhaseStepEnd, Chain: e.name, RunID: runID, Step: name,
			Duration: stepEnd.Sub(stepStart)})

		if !res.IsSuccess() {
			emit(ctx, e.sink, Event{Phase: PhaseFailure, Chain: e.name, RunID: runID, Step: name,
				Reason: res.Reason()})
			if t != nil {
				t.UnappliedSteps = append(t.UnappliedSteps[:0], names[i:]...)
			}
			return e.finish(ctx, runID, start, res, t)
		}

		if next := res.Result(); !rop.IsNil(next) {
			c = next
		}

		if t != nil {
			snapshot, err := snapshotOf(c, clone, name)
			if err != nil {
				failed := rop.Fail[C](err)
				emit(ctx, e.sink, Event{Phase: PhaseFailure, Chain: e.name, RunID: runID, Step: name,
					Reason: failed.Reason()})
				t.UnappliedSteps = append(t.UnappliedSteps[:0], names[i:]...)
				return e.finish(ctx, runID, start, failed, t)
			}
			t.History = append(t.History, StepRecord[C]{Name: name, Context: snapshot, Start: stepStart, End: stepEnd})
		}
	}

	return e.finish(ctx, runID, start, rop.Success(c), t)
}

func (e *Executor[C]) finish(ctx context.Context, runID uuid.UUID, start time.Time,
	res rop.Result[C], t *Timeline[C]) rop.Result[C] {

	end := time.Now()
	if t != nil {
		t.End = end
	}
	emit(ctx, e.sink, Event{Phase: PhaseEnd, Chain: e.name, RunID: runID, Duration: end.Sub(start),
		Success: res.IsSuccess(), Reason: res.Reason()})
	return res
}

func invoke[C any](ctx context.Context, h Handler[C], name string, c C) (res rop.Result[C]) {
	defer func() {
		if p := recover(); p != nil {
			res = rop.Fail[C](fmt.Errorf("%w: %s: %v", ErrHandlerPanic, name, p))
		}
	}()

	res = h.Handle(ctx, c)
	if res.IsEmpty() {
		return rop.Fail[C](fmt.Errorf("%w: %s", ErrEmptyResult, name))
	}
	return res
}

// snapshotOf returns the record kept for a step: a clone of c, or c itself
// when cloning is off. A panicking Clone is reported against the step.
func snapshotOf[C Clonable[C]](c C, clone bool, name string) (snapshot C, err error) {
	if !clone {
		return c, nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: clone: %v", ErrHandlerPanic, name, p)
		}
	}()
	return c.Clone(), nil
}

func namesOf[C any](handlers []Handler[C]) []string {
	names := make([]string, 0, len(handlers))
	for _, h := range handlers {
		names = append(names, NameOf(h))
	}
	return names
}

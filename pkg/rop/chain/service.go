package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/chainer/pkg/rop"
)

// resolver turns declared ids into handlers once and keeps the result.
// A failed resolution caches nothing.
type resolver[C any] struct {
	mu       sync.Mutex
	registry Registry[C]
	ids      []string
	resolved []Handler[C]
	done     bool
}

func (r *resolver[C]) resolve() ([]Handler[C], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return r.resolved, nil
	}

	if r.registry == nil {
		return nil, fmt.Errorf("resolve steps: no registry")
	}

	handlers := make([]Handler[C], 0, len(r.ids))
	for _, id := range r.ids {
		h, ok := r.registry.Resolve(id)
		if !ok || h == nil {
			return nil, fmt.Errorf("step %s %w", id, ErrNotRegistered)
		}
		handlers = append(handlers, as[C]{name: id, Handler: h})
	}

	r.resolved, r.done = handlers, true
	return handlers, nil
}

// Service binds a declared list of step ids to a registry. The ids are
// resolved on the first run and reused afterwards; history reports each
// step under its declared id.
type Service[C Clonable[C]] struct {
	opts     []Option[C]
	settings settings[C]
	resolver resolver[C]
}

func NewService[C Clonable[C]](registry Registry[C], steps []string, opts ...Option[C]) *Service[C] {
	return &Service[C]{
		opts:     opts,
		settings: newSettings(opts),
		resolver: resolver[C]{registry: registry, ids: append([]string{}, steps...)},
	}
}

func (s *Service[C]) Name() string {
	return s.settings.name
}

// Steps returns the declared step ids in order.
func (s *Service[C]) Steps() []string {
	return append([]string{}, s.resolver.ids...)
}

func (s *Service[C]) Execute(ctx context.Context, c C) rop.Result[C] {
	handlers, err := s.resolver.resolve()
	if err != nil {
		s.misconfigured(ctx, uuid.New(), time.Now(), time.Now(), err)
		return rop.Fail[C](err)
	}
	return NewExecutor(handlers, s.opts...).Execute(ctx, c)
}

func (s *Service[C]) ExecuteWithHistory(ctx context.Context, c C) *HistoryResult[C] {
	handlers, err := s.resolver.resolve()
	if err != nil {
		out := &HistoryResult[C]{
			Result:   rop.Fail[C](err),
			Timeline: newTimeline[C](s.settings.name, s.resolver.ids),
		}
		out.UnappliedSteps = append(out.UnappliedSteps, s.resolver.ids...)
		out.End = time.Now()
		s.misconfigured(ctx, out.RunID, out.Start, out.End, err)
		return out
	}
	return NewExecutor(handlers, s.opts...).ExecuteWithHistory(ctx, c)
}

// misconfigured reports a run that never started because its steps could
// not be resolved, so sinks still see it start and end.
func (s *Service[C]) misconfigured(ctx context.Context, runID uuid.UUID, start, end time.Time, err error) {
	name, reason := s.settings.name, err.Error()

	emit(ctx, s.settings.sink, Event{Phase: PhaseStart, Chain: name, RunID: runID})
	emit(ctx, s.settings.sink, Event{Phase: PhaseFailure, Chain: name, RunID: runID, Reason: reason})
	emit(ctx, s.settings.sink, Event{Phase: PhaseEnd, Chain: name, RunID: runID, Duration: end.Sub(start),
		Reason: reason})
}

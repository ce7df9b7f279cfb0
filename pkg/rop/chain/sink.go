package chain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseStart     Phase = "start"
	PhaseStepStart Phase = "step_start"
	PhaseStepEnd   Phase = "step_end"
	PhaseFailure   Phase = "failure"
	PhaseEnd       Phase = "end"
)

// Event is one instrumentation record of a chain run.
// Step is set for step_start, step_end and failure (unless the run failed
// before any step ran). Duration is set for step_end and end. Success is
// only meaningful on end; a failed run may carry an empty Reason.
type Event struct {
	Phase    Phase
	Chain    string
	RunID    uuid.UUID
	Step     string
	Duration time.Duration
	Success  bool
	Reason   string
}

// Sink receives events from an executor. Observe must not block for long:
// it runs inline between steps.
type Sink interface {
	Observe(ctx context.Context, e Event)
}

type SinkFunc func(ctx context.Context, e Event)

func (f SinkFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

func emit(ctx context.Context, sink Sink, e Event) {
	if sink == nil {
		return
	}
	defer func() { _ = recover() }()
	sink.Observe(ctx, e)
}

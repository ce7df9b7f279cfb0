package core

import "context"

type OptionKey string

const (
	HistoryOptionKey OptionKey = "history_options"
	WorkerOptionKey  OptionKey = "worker_options"
)

type MaxLimitOption struct {
	Value int
}
type WorkerOptions struct {
	MaxCount MaxLimitOption
}

type HistoryOptions struct {
	CloneOnStep bool
}

// WithHistoryOptions controls how ExecuteWithHistory snapshots the context.
// With cloneOnStep false every StepRecord aliases the live context.
func WithHistoryOptions(ctx context.Context, cloneOnStep bool) context.Context {
	return context.WithValue(ctx, HistoryOptionKey, HistoryOptions{CloneOnStep: cloneOnStep})
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func IsCloneOnStepEnabled(ctx context.Context, defaultCloneOnStep bool) bool {
	options, ok := ctx.Value(HistoryOptionKey).(HistoryOptions)
	if ok {
		return options.CloneOnStep
	}
	return defaultCloneOnStep
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

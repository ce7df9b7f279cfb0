package observe

import (
	"context"
	"io"
	"log/slog"

	"github.com/ib-77/chainer/pkg/rop/chain"
)

// LogSink writes chain events to a structured logger. Failures are logged
// at Warn, run boundaries at Info and step events at Debug.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Observe(ctx context.Context, e chain.Event) {
	attrs := []slog.Attr{
		slog.String("chain", e.Chain),
		slog.String("run_id", e.RunID.String()),
	}
	if e.Step != "" {
		attrs = append(attrs, slog.String("step", e.Step))
	}

	switch e.Phase {
	case chain.PhaseStart:
		s.logger.LogAttrs(ctx, slog.LevelInfo, "chain started", attrs...)
	case chain.PhaseStepStart:
		s.logger.LogAttrs(ctx, slog.LevelDebug, "step started", attrs...)
	case chain.PhaseStepEnd:
		attrs = append(attrs, slog.Duration("duration", e.Duration))
		s.logger.LogAttrs(ctx, slog.LevelDebug, "step finished", attrs...)
	case chain.PhaseFailure:
		attrs = append(attrs, slog.String("reason", e.Reason))
		s.logger.LogAttrs(ctx, slog.LevelWarn, "chain failed", attrs...)
	case chain.PhaseEnd:
		attrs = append(attrs, slog.Duration("duration", e.Duration), slog.Bool("success", e.Success))
		if !e.Success {
			attrs = append(attrs, slog.String("reason", e.Reason))
		}
		s.logger.LogAttrs(ctx, slog.LevelInfo, "chain finished", attrs...)
	}
}

package chain

type settings[C any] struct {
	name       string
	sink       Sink
	newContext func() C
}

// Option configures an Executor or a Service.
type Option[C any] func(*settings[C])

// WithName labels the chain in events and reports.
func WithName[C any](name string) Option[C] {
	return func(s *settings[C]) {
		s.name = name
	}
}

// WithSink attaches an instrumentation sink.
func WithSink[C any](sink Sink) Option[C] {
	return func(s *settings[C]) {
		s.sink = sink
	}
}

// WithContextFactory sets how a context is built when the caller passes none.
func WithContextFactory[C any](newContext func() C) Option[C] {
	return func(s *settings[C]) {
		s.newContext = newContext
	}
}

func newSettings[C any](opts []Option[C]) settings[C] {
	s := settings[C]{newContext: newContext[C]}
	for _, opt := range opts {
		opt(&s)
	}
	if s.newContext == nil {
		s.newContext = newContext[C]
	}
	return s
}

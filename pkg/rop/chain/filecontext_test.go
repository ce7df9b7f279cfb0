package chain_test

import (
	"context"
	"strings"
	"sync"

	"github.com/ib-77/chainer/pkg/rop"
	"github.com/ib-77/chainer/pkg/rop/chain"
	"github.com/ib-77/chainer/pkg/rop/solo"
)

const (
	legitInput    = "My name,,,, is Nathan Pepin. and .I'm legit"
	legitOutput   = "MY NAME IS NATHAN PEPIN. AND .I'M LEGIT"
	notLegitInput = "My name,,,, is Nathan Pepin. and .I'm l"
	notLegit      = "This ain't legit"
)

type FileContext struct {
	Content string
}

func (f *FileContext) Clone() *FileContext {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

type UpperCase struct{}

func (UpperCase) Handle(_ context.Context, c *FileContext) rop.Result[*FileContext] {
	c.Content = strings.ToUpper(c.Content)
	return rop.Success(c)
}

type RemoveComma struct{}

func (RemoveComma) Handle(_ context.Context, c *FileContext) rop.Result[*FileContext] {
	c.Content = strings.ReplaceAll(c.Content, ",", "")
	return rop.Success(c)
}

type IsLegit struct{}

func (IsLegit) Handle(ctx context.Context, c *FileContext) rop.Result[*FileContext] {
	return solo.Validate(ctx, c, func(_ context.Context, in *FileContext) (bool, string) {
		if !strings.Contains(strings.ToLower(in.Content), "legit") {
			return false, notLegit
		}
		return true, ""
	})
}

func fileHandlers() []chain.Handler[*FileContext] {
	return []chain.Handler[*FileContext]{UpperCase{}, RemoveComma{}, IsLegit{}}
}

func newFileChain(opts ...chain.Option[*FileContext]) *chain.Executor[*FileContext] {
	return chain.NewExecutor(fileHandlers(), opts...)
}

func fileRegistry() *chain.MapRegistry[*FileContext] {
	return chain.NewRegistry[*FileContext]().
		MustRegister("upper_case", UpperCase{}).
		MustRegister("remove_comma", RemoveComma{}).
		MustRegister("is_legit", IsLegit{})
}

// recorder is a Sink that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []chain.Event
}

func (r *recorder) Observe(_ context.Context, e chain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) phases() []chain.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	phases := make([]chain.Phase, 0, len(r.events))
	for _, e := range r.events {
		phases = append(phases, e.Phase)
	}
	return phases
}

func (r *recorder) byPhase(p chain.Phase) []chain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chain.Event
	for _, e := range r.events {
		if e.Phase == p {
			out = append(out, e)
		}
	}
	return out
}

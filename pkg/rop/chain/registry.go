package chain

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves a declared step identifier to a live handler.
type Registry[C any] interface {
	Resolve(id string) (Handler[C], bool)
}

type RegistryFunc[C any] func(id string) (Handler[C], bool)

func (f RegistryFunc[C]) Resolve(id string) (Handler[C], bool) { return f(id) }

// MapRegistry is an in-memory Registry safe for concurrent use.
type MapRegistry[C any] struct {
	mu       sync.RWMutex
	handlers map[string]Handler[C]
}

func NewRegistry[C any]() *MapRegistry[C] {
	return &MapRegistry[C]{handlers: make(map[string]Handler[C])}
}

// Register adds h under id. Registering the same id twice is an error.
func (r *MapRegistry[C]) Register(id string, h Handler[C]) error {
	if id == "" {
		return fmt.Errorf("register step: empty id")
	}
	if h == nil {
		return fmt.Errorf("register step %s: nil handler", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[id]; ok {
		return fmt.Errorf("register step %s: already registered", id)
	}
	r.handlers[id] = h
	return nil
}

func (r *MapRegistry[C]) MustRegister(id string, h Handler[C]) *MapRegistry[C] {
	if err := r.Register(id, h); err != nil {
		panic(err)
	}
	return r
}

func (r *MapRegistry[C]) Resolve(id string) (Handler[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[id]
	return h, ok
}

// IDs returns the registered identifiers, sorted.
func (r *MapRegistry[C]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package chain

import "errors"

// Builder declares a chain and registers its handlers at the same time.
// Registration errors are collected and returned by Service.
type Builder[C Clonable[C]] struct {
	registry *MapRegistry[C]
	name     string
	steps    []string
	errs     []error
}

// Compose starts a named chain whose handlers live in registry.
func Compose[C Clonable[C]](registry *MapRegistry[C], name string) *Builder[C] {
	return &Builder[C]{registry: registry, name: name}
}

// Add registers h under id and appends id to the chain.
func (b *Builder[C]) Add(id string, h Handler[C]) *Builder[C] {
	if err := b.registry.Register(id, h); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.steps = append(b.steps, id)
	return b
}

// Use appends an id that is already (or will be) registered elsewhere.
func (b *Builder[C]) Use(ids ...string) *Builder[C] {
	b.steps = append(b.steps, ids...)
	return b
}

func (b *Builder[C]) Service(opts ...Option[C]) (*Service[C], error) {
	if len(b.errs) != 0 {
		return nil, errors.Join(b.errs...)
	}
	opts = append([]Option[C]{WithName[C](b.name)}, opts...)
	return NewService[C](b.registry, b.steps, opts...), nil
}

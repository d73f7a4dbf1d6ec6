package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
)

// Accessor is a lazy handle on a key. Nothing is built until Get is called, and each Get
// goes through the engine so the caller always sees the current artifact.
type Accessor[A any] struct {
	engine   Engine[A]
	build    BuildFunc[A]
	key      domain.Key
	consumer domain.Key
}

// NewAccessor creates an accessor for key. consumer may be the zero Key.
func NewAccessor[A any](engine Engine[A], build BuildFunc[A], key, consumer domain.Key) *Accessor[A] {
	return &Accessor[A]{
		engine:   engine,
		build:    build,
		key:      key,
		consumer: consumer,
	}
}

// Key returns the key the accessor resolves.
func (a *Accessor[A]) Key() domain.Key {
	return a.key
}

// Get loads the artifact. When the accessor has a consumer and that consumer is being
// built, the edge consumer -> key is recorded as part of that build.
func (a *Accessor[A]) Get(ctx context.Context) (A, error) {
	artifact, _, err := a.engine.Load(ctx, a.build, a.key)
	if err != nil {
		return artifact, err
	}
	if a.consumer.Valid() && a.engine.Building(a.consumer) {
		if err := a.engine.AddEdge(a.consumer, a.key); err != nil {
			var zero A
			return zero, err
		}
	}
	return artifact, nil
}

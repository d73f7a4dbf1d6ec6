package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
)

var _ Engine[any] = (*Shallow[any])(nil)

// Shallow rebuilds a key when its own change stamp differs from the one recorded at
// its last successful build. Dependencies are not inspected.
type Shallow[A any] struct {
	state[A]
}

// NewShallow creates a Shallow engine.
func NewShallow[A any](g *depgraph.Graph, d *detector.Detector) *Shallow[A] {
	return &Shallow[A]{state: newState[A](g, d)}
}

// Load builds key if it was never built or its stamp changed.
func (c *Shallow[A]) Load(ctx context.Context, build BuildFunc[A], key domain.Key) (A, bool, error) {
	leave, err := c.enter(key)
	if err != nil {
		return fail[A](err)
	}
	defer leave()

	stamp := c.detector.Observe(key)
	if artifact, ok := c.artifacts[key]; ok && !c.detector.IsChanged(key, stamp) {
		return artifact, true, nil
	}

	artifact, err := c.attempt(ctx, build, key)
	if err != nil {
		return fail[A](err)
	}
	c.detector.Record(key, stamp)
	return artifact, false, nil
}

// Invalidate drops key's baseline so the next load sees a change.
func (c *Shallow[A]) Invalidate(key domain.Key) []domain.Key {
	if !c.built(key) {
		return nil
	}
	c.detector.Forget(key)
	return []domain.Key{key}
}

// Forget evicts key.
func (c *Shallow[A]) Forget(key domain.Key) {
	c.forget(key)
}

// Policy returns domain.PolicyShallow.
func (c *Shallow[A]) Policy() domain.Policy {
	return domain.PolicyShallow
}

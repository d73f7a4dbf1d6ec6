package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
)

var _ Engine[any] = (*FirstLoad[any])(nil)

// FirstLoad builds a key once and reuses it until the key is explicitly invalidated.
// It never consults the change detector.
type FirstLoad[A any] struct {
	state[A]
	invalid map[domain.Key]struct{}
}

// NewFirstLoad creates a FirstLoad engine.
func NewFirstLoad[A any](g *depgraph.Graph, d *detector.Detector) *FirstLoad[A] {
	return &FirstLoad[A]{
		state:   newState[A](g, d),
		invalid: make(map[domain.Key]struct{}),
	}
}

// Load builds key if it was never built or was invalidated since its last build.
func (c *FirstLoad[A]) Load(ctx context.Context, build BuildFunc[A], key domain.Key) (A, bool, error) {
	leave, err := c.enter(key)
	if err != nil {
		return fail[A](err)
	}
	defer leave()

	if artifact, ok := c.artifacts[key]; ok {
		if _, stale := c.invalid[key]; !stale {
			return artifact, true, nil
		}
	}

	artifact, err := c.attempt(ctx, build, key)
	if err != nil {
		return fail[A](err)
	}
	delete(c.invalid, key)
	return artifact, false, nil
}

// Invalidate flags key for rebuild. Dependents are left alone.
func (c *FirstLoad[A]) Invalidate(key domain.Key) []domain.Key {
	if !c.built(key) {
		return nil
	}
	c.invalid[key] = struct{}{}
	return []domain.Key{key}
}

// Forget evicts key.
func (c *FirstLoad[A]) Forget(key domain.Key) {
	if c.forget(key) {
		delete(c.invalid, key)
	}
}

// Policy returns domain.PolicyFirstLoad.
func (c *FirstLoad[A]) Policy() domain.Policy {
	return domain.PolicyFirstLoad
}

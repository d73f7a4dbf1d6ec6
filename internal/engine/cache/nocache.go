package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
)

var _ Engine[any] = (*NoCache[any])(nil)

// NoCache rebuilds on every load. The last artifact is kept only so it can be inspected.
type NoCache[A any] struct {
	state[A]
}

// NewNoCache creates a NoCache engine.
func NewNoCache[A any](g *depgraph.Graph, d *detector.Detector) *NoCache[A] {
	return &NoCache[A]{state: newState[A](g, d)}
}

// Load always builds key.
func (c *NoCache[A]) Load(ctx context.Context, build BuildFunc[A], key domain.Key) (A, bool, error) {
	leave, err := c.enter(key)
	if err != nil {
		return fail[A](err)
	}
	defer leave()

	artifact, err := c.attempt(ctx, build, key)
	return artifact, false, err
}

// Invalidate has nothing to mark; it reports key when it has been built.
func (c *NoCache[A]) Invalidate(key domain.Key) []domain.Key {
	if !c.built(key) {
		return nil
	}
	return []domain.Key{key}
}

// Forget evicts key.
func (c *NoCache[A]) Forget(key domain.Key) {
	c.forget(key)
}

// Policy returns domain.PolicyNoCache.
func (c *NoCache[A]) Policy() domain.Policy {
	return domain.PolicyNoCache
}

package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
	"go.trai.ch/recache/internal/engine/propagator"
)

var _ Engine[any] = (*Smart[any])(nil)

// Smart rebuilds a key while it has pending invalidation reasons.
// Reasons come from explicit invalidation, which is propagated to every built dependent,
// from stamp changes on the key or any of its transitive dependencies noticed at load
// time, and from the rebuild of a dependency.
type Smart[A any] struct {
	state[A]
	marks *domain.InvalidTable
}

// NewSmart creates a Smart engine.
func NewSmart[A any](g *depgraph.Graph, d *detector.Detector) *Smart[A] {
	return &Smart[A]{
		state: newState[A](g, d),
		marks: domain.NewInvalidTable(),
	}
}

// Load returns the stored artifact of key unless a reason to rebuild is pending or
// a change is observed on key or its transitive dependencies.
func (c *Smart[A]) Load(ctx context.Context, build BuildFunc[A], key domain.Key) (A, bool, error) {
	leave, err := c.enter(key)
	if err != nil {
		return fail[A](err)
	}
	defer leave()

	if artifact, ok := c.artifacts[key]; ok {
		if c.marks.Pending(key) == 0 {
			c.probe(key)
		}
		if c.marks.Pending(key) == 0 {
			return artifact, true, nil
		}
	}

	artifact, err := c.rebuild(ctx, build, key)
	if err != nil {
		return fail[A](err)
	}
	return artifact, false, nil
}

// probe marks key once for every key in its dependency closure whose stamp moved.
func (c *Smart[A]) probe(key domain.Key) {
	closure := append([]domain.Key{key}, c.graph.TransitiveDependencies(key)...)
	for _, k := range closure {
		if c.detector.Changed(k) {
			c.marks.Mark(key, domain.Reason{Kind: domain.ReasonChanged, Source: k})
		}
	}
}

func (c *Smart[A]) rebuild(ctx context.Context, build BuildFunc[A], key domain.Key) (A, error) {
	dependents := c.graph.TransitiveDependents(key)
	stamp := c.detector.Observe(key)
	popped := c.marks.Pop(key)

	committed := false
	defer func() {
		if !committed {
			c.marks.Restore(key, popped)
		}
	}()

	artifact, err := c.attempt(ctx, build, key)
	if err != nil {
		return artifact, err
	}
	committed = true

	c.detector.Record(key, stamp)
	c.baselineDependencies(key)
	propagator.MarkDependents(c.marks, dependents, key, c.settled)
	return artifact, nil
}

// baselineDependencies records the current stamp of every direct dependency of key
// that has no artifact of its own. Such a key was linked by the build without being
// loaded, so nothing else ever records its baseline.
func (c *Smart[A]) baselineDependencies(key domain.Key) {
	for _, dep := range c.graph.Dependencies(key) {
		if !c.built(dep) {
			c.detector.Record(dep, c.detector.Observe(dep))
		}
	}
}

// Invalidate marks key and every built key depending on it, directly or not.
func (c *Smart[A]) Invalidate(key domain.Key) []domain.Key {
	return propagator.Invalidate(c.graph, c.marks, c.built, key)
}

// Pending returns a copy of the reasons currently recorded against key.
func (c *Smart[A]) Pending(key domain.Key) domain.InvalidSet {
	return c.marks.Get(key)
}

// Forget evicts key.
func (c *Smart[A]) Forget(key domain.Key) {
	if c.forget(key) {
		c.marks.Pop(key)
	}
}

// Policy returns domain.PolicySmart.
func (c *Smart[A]) Policy() domain.Policy {
	return domain.PolicySmart
}

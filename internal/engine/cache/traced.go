package cache

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
)

var _ Engine[any] = (*Traced[any])(nil)

// Traced decorates an engine: every load and invalidation is logged at debug level and
// every build runs inside a span. Either collaborator may be nil.
type Traced[A any] struct {
	inner  Engine[A]
	logger ports.Logger
	tracer ports.Tracer
}

// NewTraced wraps inner.
func NewTraced[A any](inner Engine[A], logger ports.Logger, tracer ports.Tracer) *Traced[A] {
	return &Traced[A]{inner: inner, logger: logger, tracer: tracer}
}

// Load delegates to the wrapped engine, tracing the build if one happens.
func (t *Traced[A]) Load(ctx context.Context, build BuildFunc[A], key domain.Key) (A, bool, error) {
	artifact, fromCache, err := t.inner.Load(ctx, t.span(build), key)
	t.debug(fmt.Sprintf("load %s: %s", key, domain.OutcomeOf(fromCache, err)))
	return artifact, fromCache, err
}

func (t *Traced[A]) span(build BuildFunc[A]) BuildFunc[A] {
	if t.tracer == nil {
		return build
	}
	return func(ctx context.Context, key domain.Key) (A, error) {
		ctx, span := t.tracer.Start(ctx, "build",
			ports.WithAttribute("key", key.String()),
			ports.WithAttribute("policy", t.inner.Policy().String()),
		)
		defer span.End()

		artifact, err := build(ctx, key)
		if err != nil {
			span.RecordError(err)
		}
		return artifact, err
	}
}

// Invalidate delegates to the wrapped engine and logs the marked keys.
func (t *Traced[A]) Invalidate(key domain.Key) []domain.Key {
	marked := t.inner.Invalidate(key)
	names := make([]string, 0, len(marked))
	for _, k := range marked {
		names = append(names, k.String())
	}
	t.debug(fmt.Sprintf("invalidate %s: [%s]", key, strings.Join(names, " ")))
	return marked
}

// AddEdge delegates to the wrapped engine.
func (t *Traced[A]) AddEdge(consumer, dependency domain.Key) error {
	return t.inner.AddEdge(consumer, dependency)
}

// ClearOutgoing delegates to the wrapped engine.
func (t *Traced[A]) ClearOutgoing(consumer domain.Key) {
	t.inner.ClearOutgoing(consumer)
}

// Artifact delegates to the wrapped engine.
func (t *Traced[A]) Artifact(key domain.Key) (A, bool) {
	return t.inner.Artifact(key)
}

// Built delegates to the wrapped engine.
func (t *Traced[A]) Built() []domain.Key {
	return t.inner.Built()
}

// Building delegates to the wrapped engine.
func (t *Traced[A]) Building(key domain.Key) bool {
	return t.inner.Building(key)
}

// Forget delegates to the wrapped engine.
func (t *Traced[A]) Forget(key domain.Key) {
	t.inner.Forget(key)
	t.debug(fmt.Sprintf("forget %s", key))
}

// Policy returns the policy of the wrapped engine.
func (t *Traced[A]) Policy() domain.Policy {
	return t.inner.Policy()
}

// Unwrap returns the decorated engine.
func (t *Traced[A]) Unwrap() Engine[A] {
	return t.inner
}

func (t *Traced[A]) debug(msg string) {
	if t.logger != nil {
		t.logger.Debug(msg)
	}
}

package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
	"go.trai.ch/zerr"
)

// Workspace bundles the graph, detector and policy engine of one logical workspace.
// Every caller that shares artifacts shares a Workspace; nothing is global.
type Workspace[A any] struct {
	Engine[A]

	graph    *depgraph.Graph
	detector *detector.Detector
}

// Option configures a Workspace.
type Option func(*workspaceConfig)

type workspaceConfig struct {
	logger ports.Logger
	tracer ports.Tracer
}

// WithTracing wraps the engine so that every load and invalidation is logged and every
// build is recorded as a span.
func WithTracing(logger ports.Logger, tracer ports.Tracer) Option {
	return func(c *workspaceConfig) {
		c.logger = logger
		c.tracer = tracer
	}
}

// NewWorkspace creates an empty workspace using policy, probing changes through oracle.
func NewWorkspace[A any](policy domain.Policy, oracle ports.ChangeOracle, opts ...Option) (*Workspace[A], error) {
	cfg := &workspaceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	g := depgraph.New()
	d := detector.New(oracle)
	engine, err := New[A](policy, g, d)
	if err != nil {
		return nil, err
	}
	if cfg.logger != nil || cfg.tracer != nil {
		engine = NewTraced(engine, cfg.logger, cfg.tracer)
	}

	return &Workspace[A]{
		Engine:   engine,
		graph:    g,
		detector: d,
	}, nil
}

// Graph exposes the dependency graph for inspection.
func (w *Workspace[A]) Graph() *depgraph.Graph {
	return w.graph
}

// Detector exposes the change detector, e.g. to inhibit probing during bulk work.
func (w *Workspace[A]) Detector() *detector.Detector {
	return w.detector
}

// Reload invalidates key and loads it again. Reloading a key that was never built fails.
func (w *Workspace[A]) Reload(ctx context.Context, build BuildFunc[A], key domain.Key) (A, error) {
	if _, ok := w.Artifact(key); !ok {
		var zero A
		return zero, zerr.With(domain.ErrKeyNotLoaded, "key", key.String())
	}
	w.Invalidate(key)
	artifact, _, err := w.Load(ctx, build, key)
	return artifact, err
}

// Accessor returns a lazy handle on key. When consumer is valid, every successful Get
// made while consumer is being built also records that consumer depends on key.
func (w *Workspace[A]) Accessor(build BuildFunc[A], key, consumer domain.Key) *Accessor[A] {
	return NewAccessor(w.Engine, build, key, consumer)
}

// Reset forgets every built key.
func (w *Workspace[A]) Reset() {
	for _, key := range w.Built() {
		w.Forget(key)
	}
}

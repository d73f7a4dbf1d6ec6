// Package cache decides, per key, whether a stored artifact can be reused or must be rebuilt.
package cache

import (
	"context"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
	"go.trai.ch/zerr"
)

// BuildFunc produces the artifact for key.
// It may call Load for other keys and AddEdge for the keys it consumed before returning.
type BuildFunc[A any] func(ctx context.Context, key domain.Key) (A, error)

// Engine is the contract shared by every cache policy.
// Implementations are not safe for concurrent use; callers serialize access.
type Engine[A any] interface {
	// Load returns the artifact for key, building it when the policy says it is stale.
	// fromCache reports whether the stored artifact was returned without building.
	// A build error is returned unchanged and leaves the previous state untouched.
	Load(ctx context.Context, build BuildFunc[A], key domain.Key) (artifact A, fromCache bool, err error)
	// Invalidate forces the next Load of key to rebuild and returns every key it marked.
	Invalidate(key domain.Key) []domain.Key
	// AddEdge records that consumer used dependency during its current build.
	AddEdge(consumer, dependency domain.Key) error
	// ClearOutgoing drops every edge recorded for consumer.
	ClearOutgoing(consumer domain.Key)
	// Artifact returns the committed artifact of key without building.
	Artifact(key domain.Key) (A, bool)
	// Built returns every key with a committed artifact, sorted.
	Built() []domain.Key
	// Building reports whether key is currently being built.
	Building(key domain.Key) bool
	// Forget evicts key: its artifact, outgoing edges, baseline and pending reasons.
	Forget(key domain.Key)
	// Policy names the rebuild policy of the engine.
	Policy() domain.Policy
}

// New creates the engine implementing policy on top of a shared graph and detector.
func New[A any](policy domain.Policy, g *depgraph.Graph, d *detector.Detector) (Engine[A], error) {
	switch policy {
	case domain.PolicyNoCache:
		return NewNoCache[A](g, d), nil
	case domain.PolicyFirstLoad:
		return NewFirstLoad[A](g, d), nil
	case domain.PolicyShallow:
		return NewShallow[A](g, d), nil
	case domain.PolicySmart:
		return NewSmart[A](g, d), nil
	default:
		return nil, zerr.With(domain.ErrInvalidPolicy, "policy", string(policy))
	}
}

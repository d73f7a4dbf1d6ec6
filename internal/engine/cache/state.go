package cache

import (
	"context"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/engine/detector"
	"go.trai.ch/zerr"
)

// state is the bookkeeping every policy shares: committed artifacts, the dependency
// graph, the change detector and the stack of keys currently being built.
type state[A any] struct {
	graph     *depgraph.Graph
	detector  *detector.Detector
	artifacts map[domain.Key]A
	building  []domain.Key
}

func newState[A any](g *depgraph.Graph, d *detector.Detector) state[A] {
	return state[A]{
		graph:     g,
		detector:  d,
		artifacts: make(map[domain.Key]A),
	}
}

// AddEdge records that consumer used dependency during its current build.
func (s *state[A]) AddEdge(consumer, dependency domain.Key) error {
	return s.graph.AddEdge(consumer, dependency)
}

// ClearOutgoing drops every edge recorded for consumer.
func (s *state[A]) ClearOutgoing(consumer domain.Key) {
	s.graph.ClearOutgoing(consumer)
}

// Artifact returns the committed artifact of key without building.
func (s *state[A]) Artifact(key domain.Key) (A, bool) {
	a, ok := s.artifacts[key]
	return a, ok
}

// Built returns every key with a committed artifact, sorted.
func (s *state[A]) Built() []domain.Key {
	return domain.SortKeys(slices.Collect(maps.Keys(s.artifacts)))
}

func (s *state[A]) built(key domain.Key) bool {
	_, ok := s.artifacts[key]
	return ok
}

// Building reports whether key is currently being built.
func (s *state[A]) Building(key domain.Key) bool {
	return s.inFlight(key)
}

func (s *state[A]) inFlight(key domain.Key) bool {
	return slices.Contains(s.building, key)
}

// settled reports whether key has a committed artifact and is not being rebuilt right now.
func (s *state[A]) settled(key domain.Key) bool {
	return s.built(key) && !s.inFlight(key)
}

// enter pushes key on the build stack. Loading a key that is already on the stack
// is a cycle and fails without touching any state.
func (s *state[A]) enter(key domain.Key) (leave func(), err error) {
	if !key.Valid() {
		return nil, zerr.With(domain.ErrMalformedKey, "key", key.String())
	}
	if s.inFlight(key) {
		return nil, s.cycleError(key)
	}
	s.building = append(s.building, key)
	depth := len(s.building)
	return func() {
		s.building = s.building[:depth-1]
	}, nil
}

func (s *state[A]) cycleError(key domain.Key) error {
	start := slices.Index(s.building, key)
	chain := make([]string, 0, len(s.building)-start+1)
	for _, k := range s.building[start:] {
		chain = append(chain, k.String())
	}
	chain = append(chain, key.String())

	err := zerr.With(domain.ErrCircularDependency, "key", key.String())
	return zerr.With(err, "chain", strings.Join(chain, " -> "))
}

// attempt runs build with key's outgoing edges cleared. The artifact is committed only
// on success; otherwise the previous edge set is put back.
func (s *state[A]) attempt(ctx context.Context, build BuildFunc[A], key domain.Key) (A, error) {
	previous := s.graph.ClearOutgoing(key)
	committed := false
	defer func() {
		if !committed {
			s.graph.ClearOutgoing(key)
			s.graph.RestoreOutgoing(key, previous)
		}
	}()

	artifact, err := build(ctx, key)
	if err != nil {
		var zero A
		return zero, err
	}
	s.artifacts[key] = artifact
	committed = true
	return artifact, nil
}

func (s *state[A]) forget(key domain.Key) bool {
	if s.inFlight(key) {
		return false
	}
	delete(s.artifacts, key)
	s.graph.ClearOutgoing(key)
	s.detector.Forget(key)
	return true
}

func fail[A any](err error) (A, bool, error) {
	var zero A
	return zero, false, err
}

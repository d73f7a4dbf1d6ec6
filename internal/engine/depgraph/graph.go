// Package depgraph records which keys were consumed while building other keys.
package depgraph

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Graph is a directed multigraph of "consumer depends on dependency" edges.
// The reverse index is kept as the exact transpose of the forward index.
// It is not safe for concurrent use.
type Graph struct {
	forward map[domain.Key]map[domain.Key]int
	reverse map[domain.Key]map[domain.Key]int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		forward: make(map[domain.Key]map[domain.Key]int),
		reverse: make(map[domain.Key]map[domain.Key]int),
	}
}

// AddEdge records one more use of dependency by consumer.
func (g *Graph) AddEdge(consumer, dependency domain.Key) error {
	if !consumer.Valid() {
		return zerr.With(domain.ErrMalformedKey, "consumer", consumer.String())
	}
	if !dependency.Valid() {
		return zerr.With(domain.ErrMalformedKey, "dependency", dependency.String())
	}
	g.add(consumer, dependency, 1)
	return nil
}

func (g *Graph) add(consumer, dependency domain.Key, n int) {
	out, ok := g.forward[consumer]
	if !ok {
		out = make(map[domain.Key]int)
		g.forward[consumer] = out
	}
	out[dependency] += n

	in, ok := g.reverse[dependency]
	if !ok {
		in = make(map[domain.Key]int)
		g.reverse[dependency] = in
	}
	in[consumer] += n
}

// ClearOutgoing removes every edge sourced at consumer and returns what was removed.
func (g *Graph) ClearOutgoing(consumer domain.Key) map[domain.Key]int {
	out, ok := g.forward[consumer]
	if !ok {
		return nil
	}
	delete(g.forward, consumer)

	for dependency := range out {
		in := g.reverse[dependency]
		delete(in, consumer)
		if len(in) == 0 {
			delete(g.reverse, dependency)
		}
	}
	return out
}

// RestoreOutgoing adds back an edge set previously returned by ClearOutgoing.
func (g *Graph) RestoreOutgoing(consumer domain.Key, edges map[domain.Key]int) {
	for dependency, n := range edges {
		if n > 0 {
			g.add(consumer, dependency, n)
		}
	}
}

// Multiplicity returns how many times consumer registered dependency during its last build.
func (g *Graph) Multiplicity(consumer, dependency domain.Key) int {
	return g.forward[consumer][dependency]
}

// Dependencies returns the direct dependencies of key, sorted.
func (g *Graph) Dependencies(key domain.Key) []domain.Key {
	return sortedKeys(g.forward[key])
}

// Dependents returns the direct consumers of key, sorted.
func (g *Graph) Dependents(key domain.Key) []domain.Key {
	return sortedKeys(g.reverse[key])
}

// TransitiveDependents returns every key that reaches key through reverse edges, excluding key.
func (g *Graph) TransitiveDependents(key domain.Key) []domain.Key {
	return closure(g.reverse, key)
}

// TransitiveDependencies returns every key reachable from key through forward edges, excluding key.
func (g *Graph) TransitiveDependencies(key domain.Key) []domain.Key {
	return closure(g.forward, key)
}

// Known reports whether key takes part in any edge.
func (g *Graph) Known(key domain.Key) bool {
	return len(g.forward[key]) > 0 || len(g.reverse[key]) > 0
}

// Keys returns every key taking part in an edge, sorted.
func (g *Graph) Keys() []domain.Key {
	seen := make(map[domain.Key]struct{}, len(g.forward)+len(g.reverse))
	for k := range g.forward {
		seen[k] = struct{}{}
	}
	for k := range g.reverse {
		seen[k] = struct{}{}
	}
	return domain.SortKeys(slices.Collect(maps.Keys(seen)))
}

// Edges yields every forward edge ordered by consumer, then dependency.
func (g *Graph) Edges() iter.Seq[domain.Edge] {
	return func(yield func(domain.Edge) bool) {
		for _, consumer := range sortedKeys(g.forward) {
			for _, dependency := range sortedKeys(g.forward[consumer]) {
				edge := domain.Edge{
					Consumer:     consumer,
					Dependency:   dependency,
					Multiplicity: g.forward[consumer][dependency],
				}
				if !yield(edge) {
					return
				}
			}
		}
	}
}

// closure walks adjacency from start with an explicit stack and a visited set,
// so cycles terminate. The start key is never part of the result.
func closure(adjacency map[domain.Key]map[domain.Key]int, start domain.Key) []domain.Key {
	visited := map[domain.Key]struct{}{start: {}}
	stack := []domain.Key{start}
	var out []domain.Key

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range adjacency[current] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			out = append(out, next)
			stack = append(stack, next)
		}
	}
	return domain.SortKeys(out)
}

func sortedKeys[V any](m map[domain.Key]V) []domain.Key {
	if len(m) == 0 {
		return nil
	}
	return domain.SortKeys(slices.Collect(maps.Keys(m)))
}

// Package propagator spreads invalidation from a key to everything built on top of it.
package propagator

import "go.trai.ch/recache/internal/core/domain"

// Graph is the reverse reachability the propagator walks.
type Graph interface {
	TransitiveDependents(key domain.Key) []domain.Key
}

// Marker records pending reasons against keys.
type Marker interface {
	Mark(key domain.Key, reason domain.Reason)
}

// Invalidate tags key and every key transitively depending on it with an explicit
// invalidation reason. Only keys accepted by built are tagged; the tagged keys are returned
// with key first and the rest sorted.
func Invalidate(g Graph, marks Marker, built func(domain.Key) bool, key domain.Key) []domain.Key {
	reason := domain.Reason{Kind: domain.ReasonInvalidated, Source: key}
	closure := append([]domain.Key{key}, g.TransitiveDependents(key)...)
	return markEach(marks, closure, reason, built)
}

// MarkDependents tags each key in dependents accepted by eligible with a rebuild reason from source.
func MarkDependents(marks Marker, dependents []domain.Key, source domain.Key, eligible func(domain.Key) bool) []domain.Key {
	reason := domain.Reason{Kind: domain.ReasonRebuilt, Source: source}
	return markEach(marks, dependents, reason, eligible)
}

func markEach(marks Marker, keys []domain.Key, reason domain.Reason, accept func(domain.Key) bool) []domain.Key {
	var marked []domain.Key
	for _, k := range keys {
		if !accept(k) {
			continue
		}
		marks.Mark(k, reason)
		marked = append(marked, k)
	}
	return marked
}

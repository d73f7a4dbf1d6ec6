package domain

import (
	"cmp"
	"maps"
	"slices"
)

// ReasonKind classifies why a key was marked for rebuild.
type ReasonKind string

const (
	// ReasonInvalidated marks an explicit invalidation of Source or one of its dependencies.
	ReasonInvalidated ReasonKind = "inv"
	// ReasonChanged marks a change stamp difference observed on Source.
	ReasonChanged ReasonKind = "fs"
	// ReasonRebuilt marks that Source, a dependency, produced a fresh artifact.
	ReasonRebuilt ReasonKind = "load"
)

// Reason is a single pending invalidation tag.
type Reason struct {
	Kind   ReasonKind
	Source Key
}

// String renders the reason as kind:source.
func (r Reason) String() string {
	return string(r.Kind) + ":" + r.Source.String()
}

// InvalidSet is a multiset of pending invalidation reasons for one key.
// A non-empty set means a rebuild is due.
type InvalidSet map[Reason]int

// Len returns the total number of pending reasons, counting duplicates.
func (s InvalidSet) Len() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Reasons returns the distinct reasons in a stable order.
func (s InvalidSet) Reasons() []Reason {
	reasons := slices.Collect(maps.Keys(s))
	slices.SortFunc(reasons, func(a, b Reason) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			CompareKeys(a.Source, b.Source),
		)
	})
	return reasons
}

// InvalidTable holds the InvalidSet of every key that has pending reasons.
// Keys without reasons are absent from the table.
type InvalidTable struct {
	sets map[Key]InvalidSet
}

// NewInvalidTable creates an empty table.
func NewInvalidTable() *InvalidTable {
	return &InvalidTable{sets: make(map[Key]InvalidSet)}
}

// Mark adds one occurrence of reason to key's set.
func (t *InvalidTable) Mark(key Key, reason Reason) {
	set, ok := t.sets[key]
	if !ok {
		set = make(InvalidSet)
		t.sets[key] = set
	}
	set[reason]++
}

// Pending returns the number of reasons recorded against key.
func (t *InvalidTable) Pending(key Key) int {
	return t.sets[key].Len()
}

// Get returns a copy of key's set.
func (t *InvalidTable) Get(key Key) InvalidSet {
	return maps.Clone(t.sets[key])
}

// Pop removes and returns key's set.
func (t *InvalidTable) Pop(key Key) InvalidSet {
	set := t.sets[key]
	delete(t.sets, key)
	return set
}

// Restore merges a previously popped set back into key's entry.
func (t *InvalidTable) Restore(key Key, set InvalidSet) {
	for reason, count := range set {
		if count <= 0 {
			continue
		}
		existing, ok := t.sets[key]
		if !ok {
			existing = make(InvalidSet)
			t.sets[key] = existing
		}
		existing[reason] += count
	}
}

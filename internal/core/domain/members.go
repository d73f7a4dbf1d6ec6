package domain

import (
	"reflect"
	"slices"
)

// Members is implemented by artifacts that expose named members.
// Comparing the members of two generations of an artifact reveals which ones were replaced.
type Members interface {
	Members() map[string]any
}

// MemberDiff is the result of comparing the members of an old and a new artifact.
type MemberDiff struct {
	// Replaced holds names present in both whose value is no longer the same object.
	Replaced []string
	// Added holds names only present in the new artifact.
	Added []string
	// Removed holds names only present in the old artifact.
	Removed []string
}

// Empty reports whether nothing changed between the two generations.
func (d MemberDiff) Empty() bool {
	return len(d.Replaced) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// DiffMembers compares two member snapshots by identity.
// Reference values (pointers, maps, slices, channels, functions) are the same when they point
// at the same object; other comparable values are the same when they are equal.
// All result slices are sorted.
func DiffMembers(old, cur map[string]any) MemberDiff {
	var diff MemberDiff
	for name, prev := range old {
		next, ok := cur[name]
		if !ok {
			diff.Removed = append(diff.Removed, name)
			continue
		}
		if !sameIdentity(prev, next) {
			diff.Replaced = append(diff.Replaced, name)
		}
	}
	for name := range cur {
		if _, ok := old[name]; !ok {
			diff.Added = append(diff.Added, name)
		}
	}
	slices.Sort(diff.Replaced)
	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)
	return diff
}

// DiffArtifacts compares two artifacts that may expose members.
// Artifacts that do not implement Members are treated as having none.
func DiffArtifacts(old, cur any) MemberDiff {
	return DiffMembers(membersOf(old), membersOf(cur))
}

func membersOf(v any) map[string]any {
	if m, ok := v.(Members); ok && !isNil(v) {
		return m.Members()
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		if va.Comparable() {
			return va.Equal(vb)
		}
		return false
	}
}

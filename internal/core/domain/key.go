package domain

import (
	"slices"
	"strings"
	"unique"
)

// Key identifies a buildable unit, canonically a cleaned filesystem path.
// Keys are interned so equality is a handle comparison and they can be used as map keys.
// The zero Key is malformed.
type Key struct {
	h unique.Handle[string]
}

// NewKey interns s as a Key.
func NewKey(s string) Key {
	return Key{h: unique.Make(s)}
}

// NewKeys interns every string in s.
func NewKeys(s ...string) []Key {
	keys := make([]Key, 0, len(s))
	for _, v := range s {
		keys = append(keys, NewKey(v))
	}
	return keys
}

// String returns the underlying string value.
func (k Key) String() string {
	var zero unique.Handle[string]
	if k.h == zero {
		return ""
	}
	return k.h.Value()
}

// Value returns the underlying unique.Handle[string].
func (k Key) Value() unique.Handle[string] {
	return k.h
}

// Valid reports whether k was built from a non-empty string.
func (k Key) Valid() bool {
	return k.String() != ""
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	k.h = unique.Make(string(text))
	return nil
}

// CompareKeys orders keys lexically by their string value.
func CompareKeys(a, b Key) int {
	return strings.Compare(a.String(), b.String())
}

// SortKeys sorts keys lexically in place and returns them.
func SortKeys(keys []Key) []Key {
	slices.SortFunc(keys, CompareKeys)
	return keys
}

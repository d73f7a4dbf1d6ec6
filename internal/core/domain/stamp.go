package domain

// Stamp is an opaque change fingerprint for a key.
// Stamps are only ever compared for equality.
type Stamp string

// BlankStamp is the reading of an absent or unreadable source.
const BlankStamp Stamp = ""

// IsBlank reports whether s is the blank reading.
func (s Stamp) IsBlank() bool {
	return s == BlankStamp
}

package domain

// Edge records that Consumer used Dependency while it was last built.
// Multiplicity counts how many times the dependency was registered during that build.
type Edge struct {
	Consumer     Key
	Dependency   Key
	Multiplicity int
}

package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Policy selects how a cache decides whether a stored artifact is still valid.
type Policy string

const (
	// PolicyNoCache rebuilds on every load.
	PolicyNoCache Policy = "nocache"
	// PolicyFirstLoad builds once and only rebuilds after an explicit invalidation.
	PolicyFirstLoad Policy = "firstload"
	// PolicyShallow rebuilds when the key's own change stamp differs.
	PolicyShallow Policy = "shallow"
	// PolicySmart rebuilds when the key or any transitive dependency changed or was invalidated.
	PolicySmart Policy = "smart"
)

// DefaultPolicy is used when the configuration does not name one.
const DefaultPolicy = PolicySmart

// Policies lists every supported policy.
func Policies() []Policy {
	return []Policy{PolicyNoCache, PolicyFirstLoad, PolicyShallow, PolicySmart}
}

// ParsePolicy converts a configuration value into a Policy.
// An empty value selects DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyNoCache, PolicyFirstLoad, PolicyShallow, PolicySmart:
		return p, nil
	default:
		return "", zerr.With(ErrInvalidPolicy, "policy", s)
	}
}

// String returns the configuration spelling of the policy.
func (p Policy) String() string {
	return string(p)
}

// OracleKind selects how change stamps are produced.
type OracleKind string

const (
	// OracleMtime stamps a key with its modification time.
	OracleMtime OracleKind = "mtime"
	// OracleContent stamps a key with a digest of its contents.
	OracleContent OracleKind = "content"
)

// ParseOracleKind converts a configuration value into an OracleKind.
// An empty value selects OracleMtime.
func ParseOracleKind(s string) (OracleKind, error) {
	switch k := OracleKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return OracleMtime, nil
	case OracleMtime, OracleContent:
		return k, nil
	default:
		return "", zerr.With(ErrInvalidOracle, "oracle", s)
	}
}

package ports

import "go.trai.ch/recache/internal/core/domain"

// ChangeOracle takes fresh change readings for keys.
//
//go:generate mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type ChangeOracle interface {
	// Observe returns the current stamp of key.
	// A missing or unreadable source reads as domain.BlankStamp.
	Observe(key domain.Key) domain.Stamp
}

// OracleFactory builds the ChangeOracle selected by configuration.
type OracleFactory interface {
	New(kind domain.OracleKind) (ChangeOracle, error)
}

// Package detector turns raw change readings into change decisions.
package detector

import (
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
)

// Detector remembers the last committed stamp of every key and compares fresh readings against it.
// It is not safe for concurrent use; callers serialize access per workspace.
type Detector struct {
	oracle    ports.ChangeOracle
	baselines map[domain.Key]domain.Stamp
	inhibit   int
}

// New creates a Detector that probes through oracle.
func New(oracle ports.ChangeOracle) *Detector {
	return &Detector{
		oracle:    oracle,
		baselines: make(map[domain.Key]domain.Stamp),
	}
}

// Observe takes a fresh reading for key.
// While inhibited the oracle is not consulted and the recorded baseline is returned instead,
// or domain.BlankStamp when there is none.
func (d *Detector) Observe(key domain.Key) domain.Stamp {
	if d.inhibit > 0 {
		return d.baselines[key]
	}
	return d.oracle.Observe(key)
}

// IsChanged reports whether stamp differs from key's baseline.
// A key without a baseline is always changed.
func (d *Detector) IsChanged(key domain.Key, stamp domain.Stamp) bool {
	baseline, ok := d.baselines[key]
	return !ok || baseline != stamp
}

// Changed observes key and reports whether the reading differs from its baseline.
func (d *Detector) Changed(key domain.Key) bool {
	return d.IsChanged(key, d.Observe(key))
}

// Record commits stamp as key's new baseline.
func (d *Detector) Record(key domain.Key, stamp domain.Stamp) {
	d.baselines[key] = stamp
}

// Forget drops key's baseline so the next check reports a change.
func (d *Detector) Forget(key domain.Key) {
	delete(d.baselines, key)
}

// Baseline returns key's committed stamp, if any.
func (d *Detector) Baseline(key domain.Key) (domain.Stamp, bool) {
	stamp, ok := d.baselines[key]
	return stamp, ok
}

// Inhibit stops probing until the returned restore func is called.
// Calls nest; probing resumes once every restore has run. Restore is idempotent.
func (d *Detector) Inhibit() (restore func()) {
	d.inhibit++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		d.inhibit--
	}
}

// Inhibited reports whether probing is currently suppressed.
func (d *Detector) Inhibited() bool {
	return d.inhibit > 0
}

// Package owner implements the ownership gate every cell operation must
// pass: a goroutine identity captured once at construction and compared
// against the caller on each access.
//
// The gate is an identity comparison, not a lock. Matching is the fast
// path and costs one goid read; a mismatch is a programmer error and
// terminates the calling goroutine through the fault package.
package owner

import (
	"github.com/kolkov/threadcell/internal/cell/fault"
)

// Gate pins a cell to the goroutine that constructed it.
//
// The identity is written once by New and never mutated, so reading it
// from another goroutine during the one legitimate cross-goroutine
// operation (teardown) needs no synchronization.
type Gate struct {
	id int64
}

// New captures the calling goroutine as owner.
func New() Gate {
	return Gate{id: Current()}
}

// ID returns the owning goroutine's identity.
func (g Gate) ID() int64 { return g.id }

// Held reports whether the calling goroutine is the owner. It is the
// non-fatal form of Check.
func (g Gate) Held() bool { return Current() == g.id }

// Check terminates the calling goroutine with a WrongThread fault unless
// it is the owner. op names the public operation for the report.
func (g Gate) Check(op string) {
	if caller := Current(); caller != g.id {
		fault.Trip(fault.WrongThread, op, g.id, caller)
	}
}

// Package borrow implements the occupancy state machine shared by a
// checked cell and its guards.
//
// One Flag tracks one cell. Its three regions are disjoint:
//
//	0   unoccupied, no live borrows
//	n>0 exactly n live shared borrows
//	n<0 the single live exclusive borrow (only Unused-1 is reachable)
//
// Every transition is attempted exactly once and either succeeds or
// fails immediately. This is a non-blocking try-lock, not a mutex: there
// are no timeouts, no retries, and nothing ever waits.
package borrow

// Flag records the live borrows of one cell as a signed counter.
//
// A Flag is deliberately a plain integer with no atomic protection: the
// ownership gate confines every read and write to the owning goroutine,
// so no memory-ordering protocol applies.
type Flag int

// Unused is the unoccupied state: no live borrows.
const Unused Flag = 0

// Reading reports whether at least one shared borrow is live.
func (f Flag) Reading() bool { return f > Unused }

// Writing reports whether the exclusive borrow is live.
func (f Flag) Writing() bool { return f < Unused }

// Shared returns the number of live shared borrows, zero outside the
// shared region.
func (f Flag) Shared() int {
	if !f.Reading() {
		return 0
	}
	return int(f)
}

// String renders the state for reports and tests.
func (f Flag) String() string {
	switch {
	case f.Writing():
		return "exclusive"
	case f.Reading():
		return "shared"
	default:
		return "unoccupied"
	}
}

// TryShared attempts to take one more shared borrow. It reports false
// while the exclusive borrow is live, or if the shared count would
// overflow (the increment wraps negative, which the Reading check
// rejects, same as a live exclusive borrow).
func (f *Flag) TryShared() bool {
	n := *f + 1
	if !n.Reading() {
		return false
	}
	*f = n
	return true
}

// TryExclusive attempts to take the exclusive borrow. It succeeds only
// from the unoccupied state.
func (f *Flag) TryExclusive() bool {
	if *f != Unused {
		return false
	}
	*f = Unused - 1
	return true
}

// ReleaseShared returns one shared borrow. Only a live shared guard may
// call it; a release without a matching acquire is a defect in the
// caller, not a user error, and aborts like unlocking an unlocked mutex.
func (f *Flag) ReleaseShared() {
	if !f.Reading() {
		panic("threadcell: release of shared borrow that is not held")
	}
	*f--
}

// ReleaseExclusive returns the exclusive borrow. Same precondition rules
// as ReleaseShared.
func (f *Flag) ReleaseExclusive() {
	if !f.Writing() {
		panic("threadcell: release of exclusive borrow that is not held")
	}
	*f++
}

package cell

import (
	"github.com/kolkov/threadcell/internal/cell/fault"
	"github.com/kolkov/threadcell/internal/cell/owner"
)

// Ref is a live shared borrow of a [RefCell]'s value.
//
// A Ref is a goroutine-local capability: every method revalidates that
// the caller is the goroutine that acquired it, independently of the
// cell's own ownership rules. Release ends the borrow and must be called
// exactly once; defer it at the acquire site so the borrow is returned
// on every exit path:
//
//	g := c.Borrow()
//	defer g.Release()
//
// Any use of a Ref after Release is a StaleGuard violation. A Ref must
// not outlive its cell.
type Ref[T any] struct {
	cell *RefCell[T]
	gid  int64
	done bool
}

// Get returns a shallow copy of the borrowed value.
func (r *Ref[T]) Get() T {
	r.use("Ref.Get")
	return r.cell.value
}

// Value returns a pointer into the cell's slot, valid until Release.
// The pointee must be treated as read-only and must not be retained past
// Release; Value exists so that large values can be read without
// copying.
func (r *Ref[T]) Value() *T {
	r.use("Ref.Value")
	return &r.cell.value
}

// Release returns the shared borrow to the cell.
func (r *Ref[T]) Release() {
	r.use("Ref.Release")
	r.done = true
	r.cell.flag.ReleaseShared()
}

func (r *Ref[T]) use(op string) {
	if r.done {
		fault.Trip(fault.StaleGuard, op, r.gid, owner.Current())
	}
	if caller := owner.Current(); caller != r.gid {
		fault.Trip(fault.WrongThread, op, r.gid, caller)
	}
}

// RefMut is the live exclusive borrow of a [RefCell]'s value, with
// read-write access. It follows the same goroutine confinement and
// exactly-once Release contract as [Ref].
type RefMut[T any] struct {
	cell *RefCell[T]
	gid  int64
	done bool
}

// Get returns a shallow copy of the borrowed value.
func (r *RefMut[T]) Get() T {
	r.use("RefMut.Get")
	return r.cell.value
}

// Set overwrites the borrowed value.
func (r *RefMut[T]) Set(v T) {
	r.use("RefMut.Set")
	r.cell.value = v
}

// Value returns a mutable pointer into the cell's slot, valid until
// Release. It must not be retained past Release.
func (r *RefMut[T]) Value() *T {
	r.use("RefMut.Value")
	return &r.cell.value
}

// Release returns the exclusive borrow to the cell.
func (r *RefMut[T]) Release() {
	r.use("RefMut.Release")
	r.done = true
	r.cell.flag.ReleaseExclusive()
}

func (r *RefMut[T]) use(op string) {
	if r.done {
		fault.Trip(fault.StaleGuard, op, r.gid, owner.Current())
	}
	if caller := owner.Current(); caller != r.gid {
		fault.Trip(fault.WrongThread, op, r.gid, caller)
	}
}

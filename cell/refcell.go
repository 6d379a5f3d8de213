package cell

import (
	"github.com/kolkov/threadcell/internal/cell/borrow"
	"github.com/kolkov/threadcell/internal/cell/fault"
	"github.com/kolkov/threadcell/internal/cell/owner"
)

// RefCell is a mutable slot whose value is reached only through borrow
// guards, enforcing at runtime the discipline a borrow checker enforces
// statically: any number of shared borrows, or exactly one exclusive
// borrow, never both.
//
// Like [Cell], a RefCell is pinned to the goroutine that created it and
// every operation revalidates the caller. The borrow flag itself is a
// plain integer — the ownership gate is what makes that safe.
//
// Acquiring a borrow never blocks. A conflicting acquire is a fatal
// violation, not a wait: misuse here is a logic error, not contention.
type RefCell[T any] struct {
	gate  owner.Gate
	flag  borrow.Flag
	value T
	drop  func(T)
	cap   Capability
	dead  bool
}

// NewRefCell creates a checked cell holding v, owned by the calling
// goroutine, with no live borrows.
func NewRefCell[T any](v T, opts ...Option[T]) *RefCell[T] {
	cfg := newConfig(opts)
	return &RefCell[T]{gate: owner.New(), value: v, drop: cfg.drop, cap: cfg.cap}
}

// NewRefCellDefault creates a checked cell holding T's zero value.
func NewRefCellDefault[T any](opts ...Option[T]) *RefCell[T] {
	var zero T
	return NewRefCell(zero, opts...)
}

// Borrow acquires a shared borrow and returns its guard. Any number of
// shared borrows may be live at once.
//
// Borrow is fatal if the exclusive borrow is live (already mutably
// borrowed) or if the caller is not the owner.
func (c *RefCell[T]) Borrow() *Ref[T] {
	c.use("Borrow")
	if !c.flag.TryShared() {
		fault.Trip(fault.AlreadyMutablyBorrowed, "Borrow", c.gate.ID(), owner.Current())
	}
	return &Ref[T]{cell: c, gid: owner.Current()}
}

// BorrowMut acquires the exclusive borrow and returns its guard.
//
// BorrowMut is fatal if any borrow is live — already borrowed when
// shared guards are out, already mutably borrowed when the exclusive
// guard is — or if the caller is not the owner.
func (c *RefCell[T]) BorrowMut() *RefMut[T] {
	c.use("BorrowMut")
	if !c.flag.TryExclusive() {
		kind := fault.AlreadyBorrowed
		if c.flag.Writing() {
			kind = fault.AlreadyMutablyBorrowed
		}
		fault.Trip(kind, "BorrowMut", c.gate.ID(), owner.Current())
	}
	return &RefMut[T]{cell: c, gid: owner.Current()}
}

// Inspect runs fn under a shared borrow. The borrow is released on every
// exit path, including a panic out of fn.
func (c *RefCell[T]) Inspect(fn func(T)) {
	g := c.Borrow()
	defer g.Release()
	fn(g.Get())
}

// Update replaces the value with fn's result under the exclusive borrow.
// The borrow is released on every exit path, including a panic out of
// fn.
func (c *RefCell[T]) Update(fn func(T) T) {
	g := c.BorrowMut()
	defer g.Release()
	g.Set(fn(g.Get()))
}

// Held reports whether the calling goroutine owns the cell.
func (c *RefCell[T]) Held() bool { return c.gate.Held() }

// Owner returns the owning goroutine's ID.
func (c *RefCell[T]) Owner() int64 { return c.gate.ID() }

// Capability reports the transfer capability the cell was built with.
func (c *RefCell[T]) Capability() Capability { return c.cap }

// Drop tears the cell down under the same policy as [Cell.Drop].
// Dropping while any borrow is live is fatal: a guard must never outlive
// its cell.
func (c *RefCell[T]) Drop() {
	if c.dead {
		fault.Trip(fault.UseAfterDrop, "Drop", c.gate.ID(), owner.Current())
	}
	if c.flag != borrow.Unused {
		kind := fault.AlreadyBorrowed
		if c.flag.Writing() {
			kind = fault.AlreadyMutablyBorrowed
		}
		fault.Trip(kind, "Drop", c.gate.ID(), owner.Current())
	}
	if c.drop != nil && !c.cap.dropAnywhere() {
		c.gate.Check("Drop")
	}
	c.dead = true
	c.runDrop()
}

func (c *RefCell[T]) runDrop() {
	if c.drop == nil {
		return
	}
	hook := c.drop
	c.drop = nil
	v := c.value
	var zero T
	c.value = zero
	hook(v)
}

// use validates liveness and ownership for one public operation.
func (c *RefCell[T]) use(op string) {
	if c.dead {
		fault.Trip(fault.UseAfterDrop, op, c.gate.ID(), owner.Current())
	}
	c.gate.Check(op)
}

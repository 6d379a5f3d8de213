package cell

import (
	"github.com/kolkov/threadcell/internal/cell/fault"
	"github.com/kolkov/threadcell/internal/cell/owner"
)

// Cell is a mutable slot pinned to the goroutine that created it.
//
// Access never blocks and never takes a lock: every operation compares
// the calling goroutine against the owner and then moves the value by
// plain copy. Because each access is a single instantaneous copy, no
// aliasing can arise and no borrow tracking is needed; use [RefCell]
// when callers must hold the value across several operations.
//
// Access from any other goroutine is a fatal violation, reported and
// terminated as described in the package documentation. The one
// exception is Drop, governed by the cell's [Capability].
type Cell[T any] struct {
	gate  owner.Gate
	value T
	drop  func(T)
	cap   Capability
	dead  bool
}

// New creates a cell holding v, owned by the calling goroutine.
func New[T any](v T, opts ...Option[T]) *Cell[T] {
	cfg := newConfig(opts)
	return &Cell[T]{gate: owner.New(), value: v, drop: cfg.drop, cap: cfg.cap}
}

// NewDefault creates a cell holding T's zero value, owned by the calling
// goroutine.
func NewDefault[T any](opts ...Option[T]) *Cell[T] {
	var zero T
	return New(zero, opts...)
}

// Get returns a shallow copy of the contained value.
func (c *Cell[T]) Get() T {
	c.use("Get")
	return c.value
}

// Set overwrites the contained value.
func (c *Cell[T]) Set(v T) {
	c.use("Set")
	c.value = v
}

// Replace stores v and returns the previous value.
func (c *Cell[T]) Replace(v T) T {
	c.use("Replace")
	prev := c.value
	c.value = v
	return prev
}

// Held reports whether the calling goroutine owns the cell.
func (c *Cell[T]) Held() bool { return c.gate.Held() }

// Owner returns the owning goroutine's ID.
func (c *Cell[T]) Owner() int64 { return c.gate.ID() }

// Capability reports the transfer capability the cell was built with.
func (c *Cell[T]) Capability() Capability { return c.cap }

// Drop tears the cell down, running the teardown hook (if any) exactly
// once with the final value. Every later operation on the cell,
// including a second Drop, is a UseAfterDrop violation.
//
// Drop validates ownership only when a hook is attached and the
// capability is [Confined]; a hookless teardown has no observable side
// effect that could assume single-goroutine access, and [SendForDrop]
// explicitly grants one-shot teardown from anywhere. A cross-goroutine
// Drop must be the last operation the program performs on the cell.
func (c *Cell[T]) Drop() {
	if c.dead {
		fault.Trip(fault.UseAfterDrop, "Drop", c.gate.ID(), owner.Current())
	}
	if c.drop != nil && !c.cap.dropAnywhere() {
		c.gate.Check("Drop")
	}
	c.dead = true
	c.runDrop()
}

func (c *Cell[T]) runDrop() {
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
func (c *Cell[T]) use(op string) {
	if c.dead {
		fault.Trip(fault.UseAfterDrop, op, c.gate.ID(), owner.Current())
	}
	c.gate.Check(op)
}

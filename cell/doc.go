// Package cell provides mutable memory cells pinned to the goroutine
// that created them, with the borrow discipline checked at runtime.
//
// A cell is for code that wants interior mutability without the cost of
// a lock, and is willing to pay a runtime identity check to guarantee
// that the value is never touched from two goroutines and that shared
// and exclusive access never overlap.
//
// # Quick Start
//
//	c := cell.NewRefCell(0)
//
//	g := c.BorrowMut()
//	g.Set(g.Get() + 1)
//	g.Release()
//
//	c.Inspect(func(v int) {
//		fmt.Println(v) // 1
//	})
//
// # API Overview
//
// Two cell variants:
//   - [Cell]: get/set/replace by plain copy. Each access is a single
//     instantaneous copy, so no borrow tracking is needed.
//   - [RefCell]: access through [Ref] (shared) and [RefMut] (exclusive)
//     guards, tracked by a borrow counter. [RefCell.Inspect] and
//     [RefCell.Update] scope a borrow to a function call.
//
// Construction: [New], [NewDefault], [NewRefCell], [NewRefCellDefault],
// with [WithDrop] and [WithCapability] options. Teardown: the Drop
// methods, whose cross-goroutine rules are set by [Capability].
//
// # Violations
//
// Misuse — access from the wrong goroutine, conflicting borrows, use of
// a released guard or a dropped cell — is a programmer error, not a
// runtime condition. It is never returned as an error value: the
// violation is reported to stderr with the offending call stack and the
// goroutine terminates by panicking with the violation. Nothing in this
// package recovers it; a caller that does and continues is operating on
// state whose invariants may already be torn. The failed operation
// never partially mutates the cell, so other goroutines observe the
// state exactly as it was before the attempt.
//
// The THREADCELL environment variable tunes reporting in the GORACE
// key=value format: halt_on_error=1 exits the process with status 66
// after the first report, log_path redirects reports.
//
// # How It Works
//
// Every operation passes an ownership gate: a goroutine ID captured at
// construction and compared against the caller. Behind the gate, a
// checked cell keeps a signed borrow counter — zero for unoccupied,
// positive for the shared count, one-below-zero for the exclusive
// borrow — read and written without atomics, which the gate makes safe.
// Guards hold a reference back to the cell; Release is the only way a
// counter transition is undone.
//
// No operation blocks, sleeps, or retries. The package provides no
// synchronization and detects misuse of concurrency rather than
// mediating it; use a mutex when contention is expected and legitimate.
package cell

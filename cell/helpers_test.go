package cell_test

import (
	"io"
	"testing"

	"github.com/kolkov/threadcell/internal/cell/fault"
)

// quiet redirects violation reports away from stderr for the duration of
// a test that provokes them on purpose.
func quiet(t *testing.T) {
	t.Helper()
	prev := fault.SetOutput(io.Discard)
	t.Cleanup(func() { fault.SetOutput(prev) })
}

// mustTrip runs fn and asserts it terminates with a violation of the
// given kind on the calling goroutine.
func mustTrip(t *testing.T, kind fault.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("operation returned, want %v violation", kind)
		}
		v, ok := r.(*fault.Violation)
		if !ok {
			t.Fatalf("panic value = %v (%T), want *fault.Violation", r, r)
		}
		if v.Kind != kind {
			t.Fatalf("violation kind = %v, want %v", v.Kind, kind)
		}
	}()
	fn()
}

// onOtherGoroutine runs fn on a fresh goroutine and returns the
// violation that terminated it, or nil if fn returned normally.
func onOtherGoroutine(t *testing.T, fn func()) *fault.Violation {
	t.Helper()
	ch := make(chan *fault.Violation, 1)
	go func() {
		defer func() {
			v, _ := recover().(*fault.Violation)
			ch <- v
		}()
		fn()
	}()
	return <-ch
}

// wantKind asserts that v is a violation of the given kind.
func wantKind(t *testing.T, v *fault.Violation, kind fault.Kind) {
	t.Helper()
	if v == nil {
		t.Fatalf("operation returned, want %v violation", kind)
	}
	if v.Kind != kind {
		t.Fatalf("violation kind = %v, want %v", v.Kind, kind)
	}
}

// Package fault implements violation reporting for thread-affine cells.
//
// A fault is a programmer error, not a runtime condition: the offending
// goroutine is terminated, never handed an error value it could ignore.
// Before termination the violation is formatted as a human-readable
// report, in the style of the race detector's output, and written to the
// configured destination (stderr by default).
//
// Behavior is tunable through the THREADCELL environment variable, which
// uses the same space-separated key=value format as GORACE:
//
//	THREADCELL="halt_on_error=1 log_path=stdout" ./myprogram
//
// Options:
//   - halt_on_error=1: exit the whole process with status 66 after the
//     first report instead of panicking the offending goroutine.
//   - log_path=stderr|stdout|<file>: report destination.
package fault

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Kind classifies a cell access violation.
type Kind int

const (
	// WrongThread: an operation ran on a goroutine other than the one
	// the cell (or guard) is pinned to.
	WrongThread Kind = iota

	// AlreadyBorrowed: an exclusive borrow was attempted while shared
	// borrows are live.
	AlreadyBorrowed

	// AlreadyMutablyBorrowed: a borrow was attempted while the exclusive
	// borrow is live.
	AlreadyMutablyBorrowed

	// StaleGuard: a guard was used or released after its Release.
	StaleGuard

	// UseAfterDrop: a cell was used or dropped after its Drop.
	UseAfterDrop
)

// String returns the report wording for a violation kind.
func (k Kind) String() string {
	switch k {
	case WrongThread:
		return "wrong-thread access"
	case AlreadyBorrowed:
		return "already borrowed"
	case AlreadyMutablyBorrowed:
		return "already mutably borrowed"
	case StaleGuard:
		return "use of released guard"
	case UseAfterDrop:
		return "use of dropped cell"
	default:
		return "unknown violation"
	}
}

// Violation describes one fatal misuse of a cell. It is the panic value
// delivered to the offending goroutine and implements error so that
// recovered values print usefully.
type Violation struct {
	// Kind classifies the misuse.
	Kind Kind

	// Op is the public operation that tripped, e.g. "BorrowMut".
	Op string

	// Owner is the goroutine the cell or guard is pinned to.
	Owner int64

	// Caller is the goroutine that performed the access.
	Caller int64

	// Stack holds the program counters of the offending call site,
	// captured with runtime.Callers at trip time.
	Stack []uintptr
}

func (v *Violation) Error() string {
	return fmt.Sprintf("threadcell: %s in %s (owner goroutine %d, caller goroutine %d)",
		v.Kind, v.Op, v.Owner, v.Caller)
}

// Format writes the full report for v to w.
//
// The layout follows the race detector's report shape: a banner, the
// violation line naming the operation and offending goroutine, the call
// stack, and the owner line.
func (v *Violation) Format(w io.Writer) {
	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "WARNING: THREAD-AFFINE CELL VIOLATION\n")
	fmt.Fprintf(w, "%s: %s by goroutine %d:\n", v.Kind, v.Op, v.Caller)
	if len(v.Stack) > 0 {
		fmt.Fprint(w, formatStack(v.Stack))
	} else {
		fmt.Fprintf(w, "  (no stack trace captured)\n")
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Cell pinned to goroutine %d\n", v.Owner)
	fmt.Fprintf(w, "==================\n")
}

// Runtime configuration, set once from THREADCELL at init and adjustable
// afterwards through SetOutput (tests, embedders).
var (
	mu          sync.Mutex
	output      io.Writer = os.Stderr
	haltOnError bool
)

func init() {
	parseEnv(os.Getenv("THREADCELL"))
}

// parseEnv applies a GORACE-style option string. Unknown keys and
// malformed fields are ignored so that a stale env var never breaks the
// host program.
func parseEnv(opts string) {
	for _, field := range strings.Fields(opts) {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "halt_on_error":
			haltOnError = val == "1"
		case "log_path":
			switch val {
			case "stderr":
				output = os.Stderr
			case "stdout":
				output = os.Stdout
			default:
				if f, err := os.Create(val); err == nil {
					output = f
				}
			}
		}
	}
}

// SetOutput redirects violation reports to w and returns the previous
// destination.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// HaltOnError reports whether a violation exits the process instead of
// panicking the goroutine.
func HaltOnError() bool {
	mu.Lock()
	defer mu.Unlock()
	return haltOnError
}

// Trip reports a violation and terminates the calling goroutine. It
// never returns: the goroutine panics with the *Violation, or the whole
// process exits with status 66 under halt_on_error=1.
//
// The failed operation has not mutated any cell state by the time Trip
// runs, so other goroutines observe the cell exactly as it was before
// the attempt.
func Trip(kind Kind, op string, owner, caller int64) {
	v := &Violation{
		Kind:   kind,
		Op:     op,
		Owner:  owner,
		Caller: caller,
		Stack:  captureStack(3),
	}
	mu.Lock()
	v.Format(output)
	halt := haltOnError
	mu.Unlock()
	if halt {
		os.Exit(66)
	}
	panic(v)
}

// maxStackDepth bounds the call stack captured for a report.
const maxStackDepth = 32

// captureStack records the offending call stack, skipping the innermost
// frames belonging to the fault machinery itself.
func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

// formatStack renders program counters as "  func()\n      file:line"
// pairs, the same frame layout race reports use. Runtime frames and the
// gate's own check frame are elided so the report starts at the access.
func formatStack(pcs []uintptr) string {
	frames := runtime.CallersFrames(pcs)
	var buf strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") &&
			!strings.Contains(frame.Function, "/internal/cell/owner.Gate.Check") {
			fmt.Fprintf(&buf, "  %s()\n      %s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	if buf.Len() == 0 {
		return "  (no stack trace available)\n"
	}
	return buf.String()
}

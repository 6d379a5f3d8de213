package fault

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{WrongThread, "wrong-thread access"},
		{AlreadyBorrowed, "already borrowed"},
		{AlreadyMutablyBorrowed, "already mutably borrowed"},
		{StaleGuard, "use of released guard"},
		{UseAfterDrop, "use of dropped cell"},
		{Kind(99), "unknown violation"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestViolationError(t *testing.T) {
	v := &Violation{Kind: AlreadyBorrowed, Op: "BorrowMut", Owner: 1, Caller: 1}
	want := "threadcell: already borrowed in BorrowMut (owner goroutine 1, caller goroutine 1)"
	if got := v.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestViolationFormat(t *testing.T) {
	v := &Violation{
		Kind:   WrongThread,
		Op:     "Borrow",
		Owner:  1,
		Caller: 42,
		Stack:  captureStack(1),
	}

	var buf bytes.Buffer
	v.Format(&buf)
	report := buf.String()

	for _, want := range []string{
		"==================",
		"WARNING: THREAD-AFFINE CELL VIOLATION",
		"wrong-thread access: Borrow by goroutine 42:",
		"Cell pinned to goroutine 1",
		"fault_test.go:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestViolationFormatNoStack(t *testing.T) {
	var buf bytes.Buffer
	(&Violation{Kind: StaleGuard, Op: "Ref.Get"}).Format(&buf)
	if !strings.Contains(buf.String(), "(no stack trace captured)") {
		t.Errorf("stackless report missing placeholder:\n%s", buf.String())
	}
}

func TestTrip(t *testing.T) {
	var buf bytes.Buffer
	defer SetOutput(SetOutput(&buf))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Trip returned, want panic")
		}
		v, ok := r.(*Violation)
		if !ok {
			t.Fatalf("panic value = %v (%T), want *Violation", r, r)
		}
		if v.Kind != AlreadyMutablyBorrowed || v.Op != "Borrow" || v.Owner != 3 || v.Caller != 3 {
			t.Errorf("violation = %+v", v)
		}
		if len(v.Stack) == 0 {
			t.Error("violation carries no stack")
		}
		if !strings.Contains(buf.String(), "already mutably borrowed") {
			t.Errorf("report not written before panic:\n%s", buf.String())
		}
	}()
	Trip(AlreadyMutablyBorrowed, "Borrow", 3, 3)
}

func TestParseEnv(t *testing.T) {
	restore := func() {
		output = os.Stderr
		haltOnError = false
	}

	tests := []struct {
		name     string
		opts     string
		wantHalt bool
	}{
		{"empty", "", false},
		{"halt on", "halt_on_error=1", true},
		{"halt off", "halt_on_error=0", false},
		{"combined", "log_path=stdout halt_on_error=1", true},
		{"unknown keys ignored", "history_size=7 halt_on_error=1", true},
		{"malformed fields ignored", "halt_on_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer restore()
			parseEnv(tt.opts)
			if haltOnError != tt.wantHalt {
				t.Errorf("haltOnError = %v, want %v", haltOnError, tt.wantHalt)
			}
		})
	}

	t.Run("log_path stdout", func(t *testing.T) {
		defer restore()
		parseEnv("log_path=stdout")
		if output != os.Stdout {
			t.Error("log_path=stdout did not redirect output")
		}
	})
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	if got := SetOutput(&buf); got != &buf {
		t.Errorf("SetOutput did not return the previous writer")
	}
}

func TestFormatStackEmpty(t *testing.T) {
	if got := formatStack(nil); !strings.Contains(got, "no stack trace") {
		t.Errorf("formatStack(nil) = %q", got)
	}
}

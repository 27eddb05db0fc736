package gate

import (
	"strings"
	"testing"
	"time"

	statex "github.com/csds-labs/resolutions-pipeline/agent/state"
)

func newState(t *testing.T) *statex.SessionState {
	t.Helper()
	return statex.NewSessionState("sess-1", "cust-1", "chat", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
}

func TestHandoffProtocol(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	st := newState(t)

	// Fresh conversation: resolution runs, order waits.
	if d := DecideResolution(st); !d.Run {
		t.Fatalf("resolution gate on fresh state = %+v, want run", d)
	}
	if d := DecideOrder(st); d.Run {
		t.Fatalf("order gate on fresh state = %+v, want skip", d)
	}

	// The instruction tool completed: roles flip for the same turn.
	RecordInstructions(st, "1. Apologize. 2. Check the order.", now)

	if d := DecideResolution(st); d.Run {
		t.Fatalf("resolution gate after retrieval = %+v, want skip", d)
	} else if !strings.Contains(d.Placeholder, "resolution") {
		t.Fatalf("placeholder %q should name the skipped agent", d.Placeholder)
	}
	if d := DecideOrder(st); !d.Run {
		t.Fatalf("order gate after retrieval = %+v, want run", d)
	}

	// Injection consumes the instructions: both agents skip from now on.
	directive, err := InjectDirective("You handle orders.", st, now)
	if err != nil {
		t.Fatalf("InjectDirective() = %v", err)
	}
	if d := DecideResolution(st); d.Run {
		t.Fatalf("resolution gate after injection = %+v, want skip", d)
	}
	if d := DecideOrder(st); d.Run {
		t.Fatalf("order gate after injection = %+v, want skip", d)
	}

	want := "You handle orders.\n\n" + InjectionHeader + "\n1. Apologize. 2. Check the order."
	if directive != want {
		t.Fatalf("directive = %q, want %q", directive, want)
	}
}

func TestDecideOrderNeedsInstructionsBehindPhase(t *testing.T) {
	t.Parallel()

	st := newState(t)
	st.Phase = statex.PhaseRetrieved // inconsistent: no instructions behind it

	if d := DecideOrder(st); d.Run {
		t.Fatal("order gate must not open without instruction text")
	}
}

func TestDecideHandlesNilState(t *testing.T) {
	t.Parallel()

	if d := DecideResolution(nil); !d.Run {
		t.Fatal("resolution gate on nil state should run")
	}
	if d := DecideOrder(nil); d.Run {
		t.Fatal("order gate on nil state should skip")
	}
}

func TestInjectDirectiveTwiceFails(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	st := newState(t)
	RecordInstructions(st, "steps", now)

	if _, err := InjectDirective("base", st, now); err != nil {
		t.Fatalf("first InjectDirective() = %v", err)
	}
	if _, err := InjectDirective("base", st, now); err == nil {
		t.Fatal("second InjectDirective() = nil, want error")
	}
}

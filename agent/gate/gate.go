// Package gate implements the per-turn handoff protocol between the
// instruction-resolution agent and the order-resolution agent. Each agent
// has a pre-run decision over the shared session state; "should not run"
// is always a substitute response, never an error.
package gate

import (
	"fmt"
	"time"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	statex "github.com/csds-labs/resolutions-pipeline/agent/state"
)

// InjectionHeader separates the static directive from the retrieved
// resolution guide appended to the order agent's directive.
const InjectionHeader = "### Historically Proven Steps ###"

// Decision is the outcome of an agent's pre-run gate.
type Decision struct {
	Run         bool
	Placeholder string
}

func skip(agent contractx.AgentType) Decision {
	return Decision{
		Placeholder: fmt.Sprintf("Agent %s skipped for this turn by its pre-run gate.", agent),
	}
}

// DecideResolution lets the instruction-resolution agent run only while
// no instructions have been produced yet.
func DecideResolution(st *statex.SessionState) Decision {
	if st != nil && st.HasInstructions() {
		return skip(contractx.AgentTypeResolution)
	}
	return Decision{Run: true}
}

// DecideOrder lets the order-resolution agent run exactly once: when
// instructions are present and have not been injected yet.
func DecideOrder(st *statex.SessionState) Decision {
	if st == nil || !st.AwaitingInjection() {
		return skip(contractx.AgentTypeOrder)
	}
	return Decision{Run: true}
}

// RecordInstructions is the instruction tool's completion hook: it
// unconditionally records the tool output into the session.
func RecordInstructions(st *statex.SessionState, text string, now time.Time) {
	st.RecordInstructions(text, now)
}

// InjectDirective rewrites the order agent's directive to append the
// retrieved instructions and marks them consumed. Callers reach this only
// after DecideOrder allowed the run, so the transition cannot legally fail.
func InjectDirective(base string, st *statex.SessionState, now time.Time) (string, error) {
	if err := st.MarkInjected(now); err != nil {
		return "", fmt.Errorf("inject directive: %w", err)
	}
	return fmt.Sprintf("%s\n\n%s\n%s", base, InjectionHeader, st.Instructions), nil
}

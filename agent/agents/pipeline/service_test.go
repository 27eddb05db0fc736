package pipeline

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	gatex "github.com/csds-labs/resolutions-pipeline/agent/gate"
	statex "github.com/csds-labs/resolutions-pipeline/agent/state"
	toolx "github.com/csds-labs/resolutions-pipeline/agent/tool"
)

// fakeResolutionAgent requests the instruction tool on every run, the way
// the real agent does on a first contact.
type fakeResolutionAgent struct {
	runs    int
	message string
}

func (f *fakeResolutionAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResponse, error) {
	f.runs++
	if req.Tools != nil {
		_, err := req.Tools(ctx, []contractx.ToolRequest{{
			Tool: toolx.ToolGetInstructions,
			Args: map[string]any{"intent": "cancel_order", "customer_motivation": "wrong item"},
		}})
		if err != nil {
			return contractx.AgentResponse{}, err
		}
	}
	return contractx.AgentResponse{Message: f.message}, nil
}

type fakeOrderAgent struct {
	runs       int
	directives []string
	message    string
}

func (f *fakeOrderAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResponse, error) {
	f.runs++
	f.directives = append(f.directives, req.Directive)
	return contractx.AgentResponse{Message: f.message}, nil
}

type fakeRegistry struct {
	resolution *fakeResolutionAgent
	order      *fakeOrderAgent
}

func (f *fakeRegistry) Resolution() contractx.Agent { return f.resolution }
func (f *fakeRegistry) Order() contractx.Agent      { return f.order }

// fakeGateway answers the instruction tool with canned resolution steps.
type fakeGateway struct {
	instructions string
	calls        int
}

func (f *fakeGateway) Execute(
	ctx context.Context,
	sessionID string,
	agentType contractx.AgentType,
	reqs []contractx.ToolRequest,
) ([]contractx.ToolResult, error) {
	f.calls++
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, contractx.ToolResult{
			Tool:   req.Tool,
			Result: f.instructions,
		})
	}
	return results, nil
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *fakeRegistry, statex.Store) {
	t.Helper()

	registry := &fakeRegistry{
		resolution: &fakeResolutionAgent{message: "I've identified the right resolution steps."},
		order:      &fakeOrderAgent{message: "Your order WN12345 has been cancelled."},
	}
	store := statex.NewMemoryStore()

	orch, err := New(store, registry, &fakeGateway{instructions: "1. Apologize. 2. Cancel the order."}, Config{
		CustomerID:  "cust-1",
		ChannelType: "chat",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return orch, registry, store
}

func TestHandleMessageTwoTurnHandoff(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orch, registry, store := newTestOrchestrator(t)

	// Turn one: resolution retrieves the steps, the order agent consumes
	// them in the same turn and closes the reply.
	reply, err := orch.HandleMessage(ctx, "sess-1", "I want to cancel order WN12345")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply != "Your order WN12345 has been cancelled." {
		t.Fatalf("turn 1 reply = %q", reply)
	}
	if registry.resolution.runs != 1 || registry.order.runs != 1 {
		t.Fatalf("turn 1 runs: resolution=%d order=%d, want 1/1",
			registry.resolution.runs, registry.order.runs)
	}

	if len(registry.order.directives) != 1 {
		t.Fatalf("order directives = %d, want 1", len(registry.order.directives))
	}
	directive := registry.order.directives[0]
	if !strings.Contains(directive, gatex.InjectionHeader) {
		t.Fatalf("order directive missing injection header:\n%s", directive)
	}
	if !strings.Contains(directive, "1. Apologize. 2. Cancel the order.") {
		t.Fatalf("order directive missing retrieved steps:\n%s", directive)
	}

	st, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.Phase != statex.PhaseInjected {
		t.Fatalf("phase after turn 1 = %s, want injected", st.Phase)
	}
	if st.CustomerID != "cust-1" || st.ChannelType != "chat" {
		t.Fatalf("session identity = %s/%s", st.CustomerID, st.ChannelType)
	}

	// Turn two: both gates are closed, the reply is the skip placeholder.
	reply, err = orch.HandleMessage(ctx, "sess-1", "thanks, anything else needed?")
	if err != nil {
		t.Fatalf("HandleMessage() turn 2 error = %v", err)
	}
	if !strings.Contains(reply, "skipped") {
		t.Fatalf("turn 2 reply = %q, want skip placeholder", reply)
	}
	if registry.resolution.runs != 1 || registry.order.runs != 1 {
		t.Fatalf("turn 2 runs: resolution=%d order=%d, want unchanged 1/1",
			registry.resolution.runs, registry.order.runs)
	}
}

func TestHandleMessageSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orch, registry, _ := newTestOrchestrator(t)

	if _, err := orch.HandleMessage(ctx, "sess-a", "cancel my order"); err != nil {
		t.Fatalf("HandleMessage(sess-a) error = %v", err)
	}
	if _, err := orch.HandleMessage(ctx, "sess-b", "cancel my order"); err != nil {
		t.Fatalf("HandleMessage(sess-b) error = %v", err)
	}

	// A fresh session goes through the full handoff again.
	if registry.resolution.runs != 2 || registry.order.runs != 2 {
		t.Fatalf("runs: resolution=%d order=%d, want 2/2",
			registry.resolution.runs, registry.order.runs)
	}
}

func TestHandleMessageValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orch, _, _ := newTestOrchestrator(t)

	if _, err := orch.HandleMessage(ctx, "  ", "hello"); err == nil ||
		!strings.Contains(err.Error(), ErrInvalidSession.Error()) {
		t.Fatalf("blank session error = %v", err)
	}
	if _, err := orch.HandleMessage(ctx, "sess-1", "   "); err == nil ||
		!strings.Contains(err.Error(), ErrInvalidMessage.Error()) {
		t.Fatalf("blank message error = %v", err)
	}
}

func TestNewValidatesDependencies(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{
		resolution: &fakeResolutionAgent{message: "m"},
		order:      &fakeOrderAgent{message: "m"},
	}
	gateway := &fakeGateway{instructions: "steps"}
	store := statex.NewMemoryStore()

	if _, err := New(nil, registry, gateway, Config{}); err == nil {
		t.Fatal("New without store = nil, want error")
	}
	if _, err := New(store, nil, gateway, Config{}); err == nil {
		t.Fatal("New without registry = nil, want error")
	}
	if _, err := New(store, registry, nil, Config{}); err == nil {
		t.Fatal("New without gateway = nil, want error")
	}
}

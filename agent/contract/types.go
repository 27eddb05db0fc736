package contract

import "context"

type AgentType string

const (
	AgentTypeResolution AgentType = "resolution"
	AgentTypeOrder      AgentType = "order"
)

// AgentRequest is one gated turn for a single agent.
// Directive overrides the agent's compiled-in directive when non-empty;
// the order agent receives its rewritten directive this way after the
// retrieved instructions have been injected.
type AgentRequest struct {
	UserMessage string       `json:"user_message"`
	Directive   string       `json:"directive,omitempty"`
	Tools       ToolExecutor `json:"-"`
}

type AgentResponse struct {
	Message string `json:"message"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ToolExecutor is the per-turn tool boundary handed to an agent by the
// orchestrator. The closure carries session identity and any post-tool
// hooks, so the agent itself stays session-agnostic.
type ToolExecutor func(ctx context.Context, reqs []ToolRequest) ([]ToolResult, error)

package contract

import "context"

type Agent interface {
	Run(ctx context.Context, req AgentRequest) (AgentResponse, error)
}

type Registry interface {
	Resolution() Agent
	Order() Agent
}

// Retriever queries the managed instruction corpus and returns the matched
// snippets flattened into a single context string. An empty result is an
// empty string, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, text string) (string, error)
}

// Summarizer condenses retrieved reference text into step-by-step
// resolution instructions.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type ToolGateway interface {
	Execute(ctx context.Context, sessionID string, agentType AgentType, reqs []ToolRequest) ([]ToolResult, error)
}

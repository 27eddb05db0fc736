package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	gatex "github.com/csds-labs/resolutions-pipeline/agent/gate"
)

// RunOrderAgent is stage two of the handoff. It runs only with
// un-consumed instructions present; its directive is rewritten to carry
// the retrieved resolution guide before the model sees the turn.
func RunOrderAgent(
	ctx context.Context,
	in *GraphState,
	agents contractx.Registry,
	gateway contractx.ToolGateway,
	baseDirective string,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	decision := gatex.DecideOrder(in.Session)
	if !decision.Run {
		in.OrderReply = decision.Placeholder
		return in, nil
	}

	directive, err := gatex.InjectDirective(baseDirective, in.Session, in.Now)
	if err != nil {
		return nil, err
	}

	executor := func(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
		return gateway.Execute(ctx, in.SessionID, contractx.AgentTypeOrder, reqs)
	}

	resp, err := agents.Order().Run(ctx, contractx.AgentRequest{
		UserMessage: in.Text,
		Directive:   directive,
		Tools:       executor,
	})
	if err != nil {
		return nil, err
	}

	in.OrderReply = resp.Message
	return in, nil
}

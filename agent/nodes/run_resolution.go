package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	gatex "github.com/csds-labs/resolutions-pipeline/agent/gate"
	toolx "github.com/csds-labs/resolutions-pipeline/agent/tool"
)

// RunResolutionAgent is stage one of the handoff. The gate suppresses the
// agent once instructions exist; when it runs, the tool executor records
// the instruction tool's output into the shared session as its completion
// hook.
func RunResolutionAgent(
	ctx context.Context,
	in *GraphState,
	agents contractx.Registry,
	gateway contractx.ToolGateway,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	decision := gatex.DecideResolution(in.Session)
	if !decision.Run {
		in.ResolutionReply = decision.Placeholder
		return in, nil
	}

	executor := func(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
		results, err := gateway.Execute(ctx, in.SessionID, contractx.AgentTypeResolution, reqs)
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			if res.Tool == toolx.ToolGetInstructions && res.Error == "" {
				gatex.RecordInstructions(in.Session, res.Result, in.Now)
			}
		}
		return results, nil
	}

	resp, err := agents.Resolution().Run(ctx, contractx.AgentRequest{
		UserMessage: in.Text,
		Tools:       executor,
	})
	if err != nil {
		return nil, err
	}

	in.ResolutionReply = resp.Message
	return in, nil
}

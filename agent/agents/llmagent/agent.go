// Package llmagent is the shared runtime for both pipeline agents: a
// tool-calling planning pass, execution of the requested tools through the
// per-turn executor, and a finalize pass that writes the customer-facing
// message.
package llmagent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
)

type llmAgentImpl struct {
	agentType    contractx.AgentType
	directive    string
	toolRunner   compose.Runnable[map[string]any, *schema.Message]
	finalRunner  compose.Runnable[map[string]any, *schema.Message]
	allowedTools map[string]struct{}
}

var _ contractx.Agent = (*llmAgentImpl)(nil)

func newAgent(
	ctx context.Context,
	agentType contractx.AgentType,
	chatModel einomodel.ToolCallingChatModel,
	directive string,
	tools []*schema.ToolInfo,
) (*llmAgentImpl, error) {
	if strings.TrimSpace(directive) == "" {
		return nil, fmt.Errorf("%w: directive for agent=%s", contractx.ErrPromptMissing, agentType)
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, agentType, err)
	}
	toolRunner, err := compileChatGraph(ctx, toolModel, fmt.Sprintf("%s.tool_planning_graph", agentType))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	finalRunner, err := compileChatGraph(ctx, chatModel, fmt.Sprintf("%s.finalize_graph", agentType))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	allowed := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowed[t.Name] = struct{}{}
	}

	return &llmAgentImpl{
		agentType:    agentType,
		directive:    strings.TrimSpace(directive),
		toolRunner:   toolRunner,
		finalRunner:  finalRunner,
		allowedTools: allowed,
	}, nil
}

func (a *llmAgentImpl) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResponse, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return contractx.AgentResponse{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	directive := strings.TrimSpace(req.Directive)
	if directive == "" {
		directive = a.directive
	}

	msg, err := a.invoke(ctx, a.toolRunner, directive, map[string]any{
		"user_message": req.UserMessage,
	})
	if err != nil {
		return contractx.AgentResponse{}, err
	}

	toolRequests, err := toToolRequests(msg.ToolCalls)
	if err != nil {
		return contractx.AgentResponse{}, err
	}

	if len(toolRequests) == 0 {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return contractx.AgentResponse{}, fmt.Errorf("%w: agent=%s returned neither message nor tool calls", contractx.ErrSchemaViolation, a.agentType)
		}
		return contractx.AgentResponse{Message: content}, nil
	}

	for _, tr := range toolRequests {
		if _, ok := a.allowedTools[tr.Tool]; !ok {
			return contractx.AgentResponse{}, fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contractx.ErrSchemaViolation, tr.Tool, a.agentType)
		}
	}

	if req.Tools == nil {
		return contractx.AgentResponse{}, fmt.Errorf("%w: agent=%s has no tool executor this turn", contractx.ErrValidation, a.agentType)
	}
	toolResults, err := req.Tools(ctx, toolRequests)
	if err != nil {
		return contractx.AgentResponse{}, fmt.Errorf("%w: execute tools for agent=%s: %v", contractx.ErrModelInvoke, a.agentType, err)
	}

	final, err := a.invoke(ctx, a.finalRunner, directive, map[string]any{
		"user_message": req.UserMessage,
		"tool_results": toolResults,
	})
	if err != nil {
		return contractx.AgentResponse{}, err
	}

	message := strings.TrimSpace(final.Content)
	if message == "" {
		return contractx.AgentResponse{}, fmt.Errorf("%w: agent=%s finalize returned empty message", contractx.ErrSchemaViolation, a.agentType)
	}
	return contractx.AgentResponse{Message: message}, nil
}

func (a *llmAgentImpl) invoke(
	ctx context.Context,
	runner compose.Runnable[map[string]any, *schema.Message],
	directive string,
	payload map[string]any,
) (*schema.Message, error) {
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload for agent=%s: %v", contractx.ErrValidation, a.agentType, err)
	}

	msg, err := runner.Invoke(ctx, map[string]any{
		"directive": directive,
		"input":     string(input),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: agent=%s invoke: %v", contractx.ErrModelInvoke, a.agentType, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: agent=%s returned nil message", contractx.ErrSchemaViolation, a.agentType)
	}
	return msg, nil
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}

package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	orderx "github.com/csds-labs/resolutions-pipeline/agent/order"
	resolvex "github.com/csds-labs/resolutions-pipeline/agent/resolve"
)

// Gateway dispatches tool requests to the instruction resolver and to the
// session's order tools. Order reports cross the boundary as pretty-printed
// JSON strings.
type Gateway struct {
	resolver *resolvex.Resolver
	orders   *orderx.Registry
}

var _ contractx.ToolGateway = (*Gateway)(nil)

func NewGateway(resolver *resolvex.Resolver, orders *orderx.Registry) (*Gateway, error) {
	if resolver == nil {
		return nil, fmt.Errorf("%w: resolver is required", contractx.ErrValidation)
	}
	if orders == nil {
		return nil, fmt.Errorf("%w: order registry is required", contractx.ErrValidation)
	}
	return &Gateway{
		resolver: resolver,
		orders:   orders,
	}, nil
}

func (g *Gateway) Execute(
	ctx context.Context,
	sessionID string,
	agentType contractx.AgentType,
	reqs []contractx.ToolRequest,
) ([]contractx.ToolResult, error) {
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		result := g.executeOne(ctx, sessionID, agentType, req)
		log.Debug().
			Str("session_id", sessionID).
			Str("agent", string(agentType)).
			Str("tool", req.Tool).
			Bool("failed", result.Error != "").
			Msg("tool executed")
		results = append(results, result)
	}
	return results, nil
}

func (g *Gateway) executeOne(
	ctx context.Context,
	sessionID string,
	agentType contractx.AgentType,
	req contractx.ToolRequest,
) contractx.ToolResult {
	switch {
	case agentType == contractx.AgentTypeResolution && req.Tool == ToolGetInstructions:
		return contractx.ToolResult{
			Tool: req.Tool,
			Result: g.resolver.Instructions(ctx,
				stringArg(req.Args, "intent"),
				stringArg(req.Args, "customer_motivation"),
			),
		}

	case agentType == contractx.AgentTypeOrder && req.Tool == ToolCheckOrderStatus:
		report := g.orders.ForSession(sessionID).CheckOrderStatus(stringArg(req.Args, "order_id"))
		return marshalResult(req.Tool, report)

	case agentType == contractx.AgentTypeOrder && req.Tool == ToolCancelOrder:
		report := g.orders.ForSession(sessionID).CancelOrder(stringArg(req.Args, "order_id"))
		return marshalResult(req.Tool, report)

	case agentType == contractx.AgentTypeOrder && req.Tool == ToolInitiateReturn:
		report := g.orders.ForSession(sessionID).InitiateReturn(
			stringArg(req.Args, "order_id"),
			stringArg(req.Args, "reason"),
			stringArg(req.Args, "return_method"),
		)
		return marshalResult(req.Tool, report)

	default:
		return contractx.ToolResult{
			Tool:  req.Tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", req.Tool, agentType),
		}
	}
}

func marshalResult(tool string, report any) contractx.ToolResult {
	pretty, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("marshal %s report: %v", tool, err),
		}
	}
	return contractx.ToolResult{
		Tool:   tool,
		Result: string(pretty),
	}
}

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

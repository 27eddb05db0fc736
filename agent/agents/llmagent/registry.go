package llmagent

import (
	"context"
	"fmt"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	llmx "github.com/csds-labs/resolutions-pipeline/agent/llm"
	promptx "github.com/csds-labs/resolutions-pipeline/agent/prompt"
	toolx "github.com/csds-labs/resolutions-pipeline/agent/tool"
)

type registryImpl struct {
	resolution contractx.Agent
	order      contractx.Agent
}

func (r *registryImpl) Resolution() contractx.Agent {
	return r.resolution
}

func (r *registryImpl) Order() contractx.Agent {
	return r.order
}

// NewRegistry builds both pipeline agents from the shared model config and
// the embedded directives.
func NewRegistry(ctx context.Context, cfg llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	resolutionModelCfg := cfg.OpenRouterFor(contractx.AgentTypeResolution)
	resolutionModel, err := resolutionModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create resolution model: %v", contractx.ErrModelInvoke, err)
	}
	orderModelCfg := cfg.OpenRouterFor(contractx.AgentTypeOrder)
	orderModel, err := orderModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create order model: %v", contractx.ErrModelInvoke, err)
	}

	resolution, err := newAgent(ctx, contractx.AgentTypeResolution, resolutionModel,
		prompts.Resolution, toolx.InfosForAgent(contractx.AgentTypeResolution))
	if err != nil {
		return nil, err
	}
	order, err := newAgent(ctx, contractx.AgentTypeOrder, orderModel,
		prompts.Order, toolx.InfosForAgent(contractx.AgentTypeOrder))
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		resolution: resolution,
		order:      order,
	}, nil
}

package tool

import (
	"github.com/cloudwego/eino/schema"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
)

const (
	ToolGetInstructions  = "get_instructions_for_user_motivation"
	ToolCheckOrderStatus = "check_order_status"
	ToolCancelOrder      = "cancel_order"
	ToolInitiateReturn   = "initiate_return"
)

// InfosForAgent declares the tool surface each agent may call.
func InfosForAgent(agentType contractx.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contractx.AgentTypeResolution:
		return []*schema.ToolInfo{
			{
				Name: ToolGetInstructions,
				Desc: "Retrieve step-by-step resolution instructions for a classified customer intent.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"intent": {
						Type:     schema.String,
						Desc:     "A high level generic title for the user's intent.",
						Required: true,
					},
					"customer_motivation": {
						Type:     schema.String,
						Desc:     "A brief description of the user's motivation for contacting customer service.",
						Required: true,
					},
				}),
			},
		}
	case contractx.AgentTypeOrder:
		return []*schema.ToolInfo{
			{
				Name: ToolCheckOrderStatus,
				Desc: "Check the current status of an order including remorse period information.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"order_id": {Type: schema.String, Desc: "The order ID to check", Required: true},
				}),
			},
			{
				Name: ToolCancelOrder,
				Desc: "Cancel an order if it's still within the remorse period.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"order_id": {Type: schema.String, Desc: "The order ID to cancel", Required: true},
				}),
			},
			{
				Name: ToolInitiateReturn,
				Desc: "Initiate a return for a shipped or delivered order with flexible return options.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"order_id": {Type: schema.String, Desc: "The order ID", Required: true},
					"reason":   {Type: schema.String, Desc: "Reason for the return", Required: true},
					"return_method": {
						Type: schema.String,
						Desc: "How the customer wants to return the item: ship, store, or postal. Defaults to ship.",
					},
				}),
			},
		}
	default:
		return nil
	}
}

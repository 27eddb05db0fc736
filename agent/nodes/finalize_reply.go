package pipelinenode

import (
	"fmt"
	"strings"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
)

// FinalizeReply surfaces the last stage's output. The order agent closes
// every turn, so its message (or its skip placeholder) is the reply.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.OrderReply)
	if reply == "" {
		reply = strings.TrimSpace(in.ResolutionReply)
	}
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: pipeline produced no reply", contractx.ErrValidation)
	}
	return GraphOutput{Reply: reply}, nil
}

// Package pipeline wires the two-stage resolutions handoff: the
// instruction-resolution agent always goes first, the order-resolution
// agent second, and the gate package decides per turn whether each stage
// actually executes.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	nodex "github.com/csds-labs/resolutions-pipeline/agent/nodes"
	promptx "github.com/csds-labs/resolutions-pipeline/agent/prompt"
	statex "github.com/csds-labs/resolutions-pipeline/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

type Config struct {
	CustomerID  string
	ChannelType string
}

// Orchestrator runs the fixed two-step sequence. It performs no branching
// and no retries of its own; conditional behavior lives entirely in the
// gating hooks inside the run nodes.
type Orchestrator struct {
	store   statex.Store
	agents  contractx.Registry
	gateway contractx.ToolGateway
	prompts promptx.PromptSet

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	customerID  string
	channelType string

	now func() time.Time
}

func New(
	store statex.Store,
	agents contractx.Registry,
	gateway contractx.ToolGateway,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if agents == nil {
		return nil, errors.New("agent registry is required")
	}
	if gateway == nil {
		return nil, errors.New("tool gateway is required")
	}

	customerID := strings.TrimSpace(cfg.CustomerID)
	if customerID == "" {
		customerID = "default-customer"
	}
	channelType := strings.TrimSpace(cfg.ChannelType)
	if channelType == "" {
		channelType = "chat"
	}

	o := &Orchestrator{
		store:       store,
		agents:      agents,
		gateway:     gateway,
		prompts:     promptx.LoadPromptSet(),
		customerID:  customerID,
		channelType: channelType,
		now:         time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

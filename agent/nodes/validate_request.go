package pipelinenode

import (
	"errors"
	"strings"
	"time"

	statex "github.com/csds-labs/resolutions-pipeline/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

// GraphState threads one turn through the pipeline graph. Both agents see
// the same Session pointer; the gate package is the only writer of its
// instruction fields.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.SessionState

	ResolutionReply string
	OrderReply      string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}

package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// InstructionPhase tracks where one conversation sits in the two-agent
// handoff. The only legal path is Empty -> Retrieved -> Injected; the enum
// replaces the pair of loosely coupled instructions/instructions_filled
// flags so the illegal combination (filled without instructions) cannot be
// represented.
type InstructionPhase string

const (
	PhaseEmpty     InstructionPhase = "empty"
	PhaseRetrieved InstructionPhase = "retrieved"
	PhaseInjected  InstructionPhase = "injected"
)

var (
	ErrNoInstructions    = errors.New("instructions are empty")
	ErrInvalidTransition = errors.New("invalid instruction phase transition")
)

// SessionState is the conversation-scoped shared mutable data visible to
// both agents in one pipeline run.
type SessionState struct {
	SessionID   string `json:"session_id"`
	CustomerID  string `json:"customer_id"`
	ChannelType string `json:"channel_type"`

	Phase        InstructionPhase `json:"phase"`
	Instructions string           `json:"instructions,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSessionState(sessionID, customerID, channelType string, now time.Time) *SessionState {
	return &SessionState{
		SessionID:   sessionID,
		CustomerID:  customerID,
		ChannelType: channelType,
		Phase:       PhaseEmpty,
		UpdatedAt:   now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// HasInstructions reports whether the instruction-resolution agent has
// already produced a resolution guide this conversation.
func (s *SessionState) HasInstructions() bool {
	return s != nil && strings.TrimSpace(s.Instructions) != ""
}

// AwaitingInjection reports whether instructions are present but the order
// agent has not yet consumed them.
func (s *SessionState) AwaitingInjection() bool {
	return s != nil && s.Phase == PhaseRetrieved && s.HasInstructions()
}

// RecordInstructions stores the instruction tool's return value. It always
// records the latest text; the phase only moves forward on the first call,
// matching the tool-completion hook contract.
func (s *SessionState) RecordInstructions(text string, now time.Time) {
	if s == nil {
		return
	}
	s.Instructions = text
	if s.Phase == "" || s.Phase == PhaseEmpty {
		if strings.TrimSpace(text) != "" {
			s.Phase = PhaseRetrieved
		}
	}
	s.Touch(now)
}

// MarkInjected flips Retrieved -> Injected once the order agent's directive
// has been rewritten. Injecting without instructions, or twice, is a
// contract violation.
func (s *SessionState) MarkInjected(now time.Time) error {
	if s == nil {
		return errors.New("nil session state")
	}
	if !s.HasInstructions() {
		return ErrNoInstructions
	}
	if s.Phase != PhaseRetrieved {
		return fmt.Errorf("%w: phase=%s", ErrInvalidTransition, s.Phase)
	}
	s.Phase = PhaseInjected
	s.Touch(now)
	return nil
}

func (s *SessionState) Validate() error {
	if s == nil {
		return errors.New("nil session state")
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	switch s.Phase {
	case "", PhaseEmpty:
	case PhaseRetrieved, PhaseInjected:
		if !s.HasInstructions() {
			return fmt.Errorf("%w: phase=%s requires instructions", ErrNoInstructions, s.Phase)
		}
	default:
		return fmt.Errorf("unknown instruction phase %q", s.Phase)
	}
	return nil
}

// Clone returns a deep copy so callers cannot alias store-held state.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
)

// ClarificationMessage is returned whenever no intent is available or the
// retrieval/summarization path degrades.
const ClarificationMessage = "I am struggling to understand. Please provide more details " +
	"about your reason for contacting us so I can assist you better."

// Resolver turns a classified intent plus customer motivation into
// step-by-step resolution instructions: corpus retrieval followed by a
// summarization pass.
type Resolver struct {
	retriever  contractx.Retriever
	summarizer contractx.Summarizer
}

func NewResolver(retriever contractx.Retriever, summarizer contractx.Summarizer) (*Resolver, error) {
	if retriever == nil {
		return nil, fmt.Errorf("%w: retriever is required", contractx.ErrValidation)
	}
	if summarizer == nil {
		return nil, fmt.Errorf("%w: summarizer is required", contractx.ErrValidation)
	}
	return &Resolver{
		retriever:  retriever,
		summarizer: summarizer,
	}, nil
}

// Instructions never fails: an empty intent short-circuits to the
// clarification message without any remote call, and remote failures are
// logged and degraded to the same message.
func (r *Resolver) Instructions(ctx context.Context, intent, motivation string) string {
	if strings.TrimSpace(intent) == "" {
		return ClarificationMessage
	}

	out, err := r.resolve(ctx, intent, motivation)
	if err != nil {
		log.Warn().
			Err(err).
			Str("intent", intent).
			Msg("instruction resolution degraded to clarification message")
		return ClarificationMessage
	}
	return out
}

func (r *Resolver) resolve(ctx context.Context, intent, motivation string) (string, error) {
	query := fmt.Sprintf("Intent: %s,\nCustomer Motivation: %s", intent, motivation)

	retrieved, err := r.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("retrieve instructions: %w", err)
	}

	prompt := fmt.Sprintf(
		"Given the following intent and customer motivation,\n%s\n"+
			"and the following step-by-step instructions retrieved from the resolution corpus,\n%s\n"+
			"Please summarize the likely step-by-step instructions an agent would need to follow "+
			"to resolve the given intent and customer motivation.",
		query, retrieved,
	)

	summary, err := r.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize instructions: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: summarizer returned empty instructions", contractx.ErrSchemaViolation)
	}
	return summary, nil
}

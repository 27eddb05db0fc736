package llm

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
)

// ChatSummarizer implements contract.Summarizer over a single-prompt chat
// completion. The surrounding whitespace of the generated text is trimmed.
type ChatSummarizer struct {
	client *openaisdk.Client
	model  string
}

var _ contractx.Summarizer = (*ChatSummarizer)(nil)

func NewChatSummarizer(client *openaisdk.Client, model string) (*ChatSummarizer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openrouter client is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: summary model is required", contractx.ErrValidation)
	}
	return &ChatSummarizer{
		client: client,
		model:  strings.TrimSpace(model),
	}, nil
}

func (s *ChatSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	completion, err := s.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Model: openaisdk.ChatModel(s.model),
	})
	if err != nil {
		return "", fmt.Errorf("%w: summarization completion: %v", contractx.ErrModelInvoke, err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: summarization returned no choices", contractx.ErrModelInvoke)
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

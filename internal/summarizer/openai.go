package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI creates a Summarizer for any OpenAI-compatible chat endpoint,
// e.g. https://api.mistral.ai/v1 with mistral-large-latest
func NewOpenAI(apiKey, baseURL, model string, log logger.Logger) Summarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &implOpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log,
	}
}

func (s *implOpenAI) Summarize(ctx context.Context, req Request) (string, error) {
	system, user := buildPrompts(req)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %w", ErrSummarization, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrSummarization)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response from %s", ErrSummarization, s.model)
	}

	s.logger.Debug(ctx, "Summary generated by %s (%d tokens)", s.model, resp.Usage.TotalTokens)
	if missing := missingSections(text); len(missing) > 0 {
		s.logger.Warn(ctx, "Minutes from %s are missing headings: %s", s.model, strings.Join(missing, ", "))
	}
	return text, nil
}

package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

type implGemini struct {
	pool   gemini.Pool
	logger logger.Logger
	model  string
}

// NewGemini creates a Summarizer that rotates through the supplied Gemini API keys
func NewGemini(ctx context.Context, apiKeys []string, baseURL, model string, log logger.Logger) (Summarizer, error) {
	pool, err := gemini.New(ctx, apiKeys, baseURL, log)
	if err != nil {
		return nil, fmt.Errorf("gemini summarizer: %w", err)
	}
	return &implGemini{
		pool:   pool,
		logger: log,
		model:  model,
	}, nil
}

// Summarize sends the minutes prompt to Gemini.
// Rotates API keys on 429 / quota errors.
func (s *implGemini) Summarize(ctx context.Context, req Request) (string, error) {
	system, user := buildPrompts(req)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	result, err := s.pool.GenerateContent(ctx, s.model, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", ErrSummarization, err)
	}

	text := responseText(result)
	if text == "" {
		return "", fmt.Errorf("%w: empty response from Gemini", ErrSummarization)
	}
	if missing := missingSections(text); len(missing) > 0 {
		s.logger.Warn(ctx, "Minutes from %s are missing headings: %s", s.model, strings.Join(missing, ", "))
	}
	return text, nil
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String())
}

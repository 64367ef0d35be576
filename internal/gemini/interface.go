package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Pool sends GenerateContent requests through a set of API keys,
// moving to the next key when the current one is rate limited.
// It is shared by the summarizer and the transcription backend.
type Pool interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

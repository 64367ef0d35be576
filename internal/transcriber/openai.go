package transcriber

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client   *openai.Client
	model    string
	language string
	logger   logger.Logger
}

// NewOpenAI creates a Client for the OpenAI audio transcription endpoint.
// baseURL may point at any compatible server; empty means api.openai.com.
func NewOpenAI(apiKey, baseURL, model, language string, log logger.Logger) Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}

	return &openAIClient{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		language: language,
		logger:   log,
	}
}

func (c *openAIClient) Transcribe(ctx context.Context, w media.Window) Result {
	req := openai.AudioRequest{
		Model:    c.model,
		FilePath: fmt.Sprintf("chunk_%03d.wav", w.Index),
		Reader:   bytes.NewReader(w.WAV()),
		Language: c.language,
		Format:   openai.AudioResponseFormatJSON,
	}

	resp, err := c.client.CreateTranscription(ctx, req)
	if err != nil {
		c.logger.Debug(ctx, "OpenAI transcription failed for %s: %v", w.Span, err)
	}
	return FromResponse(resp.Text, err)
}

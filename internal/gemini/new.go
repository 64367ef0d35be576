package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

// ErrNoKeys is returned when no API key is configured
var ErrNoKeys = errors.New("no Gemini API keys (set GEMINI_API_KEYS)")

// ErrKeysExhausted is returned when every key was rate limited in one request
var ErrKeysExhausted = errors.New("all Gemini API keys exhausted")

// New creates one client per key. baseURL overrides the API endpoint when set.
func New(ctx context.Context, apiKeys []string, baseURL string, log logger.Logger) (Pool, error) {
	if len(apiKeys) == 0 {
		return nil, ErrNoKeys
	}

	p := &implPool{logger: log}
	for i, key := range apiKeys {
		cc := &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		}
		if baseURL != "" {
			cc.HTTPOptions.BaseURL = baseURL
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			return nil, fmt.Errorf("create gemini client for key %d: %w", i+1, err)
		}
		p.clients = append(p.clients, client)
	}

	return p, nil
}

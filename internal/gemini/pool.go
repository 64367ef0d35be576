package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

type implPool struct {
	clients    []*genai.Client
	mu         sync.Mutex
	currentKey int
	logger     logger.Logger
}

// GenerateContent tries each key at most once, starting from the current one.
// Errors other than 429 / quota are returned as is.
func (p *implPool) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for range len(p.clients) {
		idx, client := p.current()

		result, err := client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			if IsRateLimited(err) {
				p.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				p.rotateKey(idx)
				lastErr = err
				continue
			}
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrKeysExhausted, lastErr)
}

func (p *implPool) current() (int, *genai.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentKey, p.clients[p.currentKey]
}

// rotateKey moves past key idx unless another request already did
func (p *implPool) rotateKey(idx int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentKey == idx {
		p.currentKey = (p.currentKey + 1) % len(p.clients)
	}
}

// IsRateLimited reports whether err is a 429 or quota rejection
func IsRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

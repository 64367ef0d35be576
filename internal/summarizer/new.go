package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// ErrSummarization wraps every failure of the language model call
var ErrSummarization = errors.New("summarization failed")

// New builds the Summarizer selected by cfg.Summarizer.Provider.
// Clients are created once here and reused for every request.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Summarizer, error) {
	sc := cfg.Summarizer

	switch sc.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.Secrets.GeminiAPIKeys, sc.BaseURL, sc.Model, log)

	case config.ProviderOpenAI:
		if cfg.Secrets.SummarizerAPIKey == "" {
			return nil, fmt.Errorf("openai summarizer: %s is not set", sc.APIKeyEnv)
		}
		return NewOpenAI(cfg.Secrets.SummarizerAPIKey, sc.BaseURL, sc.Model, log), nil

	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", sc.Provider)
	}
}

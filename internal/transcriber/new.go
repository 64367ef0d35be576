package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

// New builds the Client selected by cfg.Transcription.Backend
func New(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Client, error) {
	tc := cfg.Transcription

	switch tc.Backend {
	case config.BackendOpenAI:
		if cfg.Secrets.TranscriptionAPIKey == "" {
			return nil, fmt.Errorf("openai transcription: %s is not set", tc.APIKeyEnv)
		}
		return NewOpenAI(cfg.Secrets.TranscriptionAPIKey, tc.BaseURL, tc.Model, tc.Language, log), nil

	case config.BackendGemini:
		return NewGemini(ctx, cfg.Secrets.GeminiAPIKeys, tc.BaseURL, tc.Model, tc.Language, log)

	case config.BackendWhisper:
		return NewWhisper(tc.Whisper, tc.Language, cfg.Paths.Temp, exec, log), nil

	default:
		return nil, fmt.Errorf("unknown transcription backend %q", tc.Backend)
	}
}

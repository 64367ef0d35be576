package transcriber

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"google.golang.org/genai"
)

const geminiTranscribePrompt = `Transcribe the speech in this audio clip verbatim (language: %s).
Reply with the transcript text only, without timestamps, speaker labels or commentary.
If the clip contains no intelligible speech, reply with an empty message.`

type geminiClient struct {
	pool     gemini.Pool
	model    string
	language string
	logger   logger.Logger
}

// NewGemini creates a Client that sends each window to Gemini as inline audio.
// Keys rotate on 429 / quota errors the same way the summarizer's do.
func NewGemini(ctx context.Context, apiKeys []string, baseURL, model, language string, log logger.Logger) (Client, error) {
	pool, err := gemini.New(ctx, apiKeys, baseURL, log)
	if err != nil {
		return nil, fmt.Errorf("gemini transcription: %w", err)
	}

	return &geminiClient{
		pool:     pool,
		model:    model,
		language: language,
		logger:   log,
	}, nil
}

func (c *geminiClient) Transcribe(ctx context.Context, w media.Window) Result {
	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf(geminiTranscribePrompt, c.language)),
		genai.NewPartFromBytes(w.WAV(), "audio/wav"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := c.pool.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.Debug(ctx, "Gemini transcription failed for %s: %v", w.Span, err)
		return ServiceError(err.Error())
	}
	return classifyGemini(result)
}

// classifyGemini maps a response to a Result. Only a STOP finish counts as
// recognized audio; a blocked prompt or any other finish reason is a service
// error so the window is not mistaken for silence.
func classifyGemini(result *genai.GenerateContentResponse) Result {
	if result == nil {
		return ServiceError("empty response from Gemini")
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return ServiceError(fmt.Sprintf("gemini blocked the prompt: %s", fb.BlockReason))
	}
	if len(result.Candidates) == 0 {
		return ServiceError("empty response from Gemini")
	}

	cand := result.Candidates[0]
	if cand.FinishReason != genai.FinishReasonStop {
		reason := string(cand.FinishReason)
		if reason == "" {
			reason = "unspecified"
		}
		if cand.FinishMessage != "" {
			reason += ": " + cand.FinishMessage
		}
		return ServiceError("gemini stopped with finish reason " + reason)
	}
	if cand.Content == nil {
		return Empty()
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}
	return FromResponse(text.String(), nil)
}

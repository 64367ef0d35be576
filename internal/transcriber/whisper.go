package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

// whisper.cpp marks silent input with this token instead of returning nothing
const whisperBlank = "[BLANK_AUDIO]"

type whisperClient struct {
	cfg      config.WhisperConfig
	language string
	tempRoot string
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Client that runs a local whisper.cpp binary per window.
// Window files are staged under tempRoot.
func NewWhisper(cfg config.WhisperConfig, language, tempRoot string, exec executor.Executor, log logger.Logger) Client {
	return &whisperClient{
		cfg:      cfg,
		language: language,
		tempRoot: tempRoot,
		executor: exec,
		logger:   log,
	}
}

func (c *whisperClient) Transcribe(ctx context.Context, w media.Window) Result {
	// isolated dir per window so concurrent calls never share files
	if err := os.MkdirAll(c.tempRoot, 0755); err != nil {
		return ServiceError(fmt.Sprintf("create temp root: %v", err))
	}
	dir, err := os.MkdirTemp(c.tempRoot, "whisper-*")
	if err != nil {
		return ServiceError(fmt.Sprintf("create temp dir: %v", err))
	}
	defer os.RemoveAll(dir)

	audioPath := filepath.Join(dir, fmt.Sprintf("chunk_%03d.wav", w.Index))
	if err := w.WriteFile(audioPath); err != nil {
		return ServiceError(fmt.Sprintf("write window: %v", err))
	}
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	// -nt: no timestamps, -otxt: plain text output, -of: output file prefix
	args := []string{
		"-m", c.cfg.ModelPath,
		"-f", audioPath,
		"-l", c.language,
		"-t", strconv.Itoa(c.cfg.Threads),
		"-nt",
		"-otxt",
		"-of", outputPrefix,
	}
	if c.cfg.Prompt != "" {
		args = append(args, "--prompt", c.cfg.Prompt)
	}

	if _, err := c.executor.Execute(ctx, c.cfg.BinaryPath, args...); err != nil {
		return ServiceError(fmt.Sprintf("whisper transcribe: %v", err))
	}

	out, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return ServiceError(fmt.Sprintf("read whisper output: %v", err))
	}

	c.logger.Debug(ctx, "Whisper finished %s", w.Span)
	text := strings.ReplaceAll(string(out), whisperBlank, "")
	return FromResponse(strings.Join(strings.Fields(text), " "), nil)
}

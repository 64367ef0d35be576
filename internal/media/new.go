package media

import (
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

type implNormalizer struct {
	ffmpegPath string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Normalizer that decodes through the ffmpeg binary at ffmpegPath
func New(ffmpegPath string, exec executor.Executor, log logger.Logger) Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &implNormalizer{
		ffmpegPath: ffmpegPath,
		executor:   exec,
		logger:     log,
	}
}

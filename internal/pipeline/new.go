package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-minutes/internal/assembler"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/render"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

// Deps are the collaborators a Pipeline drives
type Deps struct {
	Normalizer media.Normalizer
	Assembler  assembler.Assembler
	Client     transcriber.Client
	Summarizer summarizer.Summarizer // nil for transcript-only use
	PDF        render.PDFRenderer
	Logger     logger.Logger
}

type implPipeline struct {
	cfg        *config.Config
	normalizer media.Normalizer
	assembler  assembler.Assembler
	client     transcriber.Client
	summarizer summarizer.Summarizer
	pdf        render.PDFRenderer
	logger     logger.Logger
}

// New creates a Pipeline from explicit collaborators
func New(cfg *config.Config, deps Deps) Pipeline {
	return &implPipeline{
		cfg:        cfg,
		normalizer: deps.Normalizer,
		assembler:  deps.Assembler,
		client:     deps.Client,
		summarizer: deps.Summarizer,
		pdf:        deps.PDF,
		logger:     deps.Logger,
	}
}

// Build wires the production collaborators selected by cfg
func Build(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Pipeline, error) {
	deps, err := buildDeps(ctx, cfg, exec, log)
	if err != nil {
		return nil, err
	}

	deps.Summarizer, err = summarizer.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	return New(cfg, deps), nil
}

// BuildTranscriber wires a Pipeline without a summarizer; Process will fail on it
func BuildTranscriber(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Pipeline, error) {
	deps, err := buildDeps(ctx, cfg, exec, log)
	if err != nil {
		return nil, err
	}
	return New(cfg, deps), nil
}

func buildDeps(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Deps, error) {
	client, err := transcriber.New(ctx, cfg, exec, log)
	if err != nil {
		return Deps{}, fmt.Errorf("create transcriber: %w", err)
	}

	return Deps{
		Normalizer: media.New(cfg.FFmpeg.BinaryPath, exec, log),
		Assembler: assembler.New(log,
			assembler.WithConcurrency(cfg.Transcription.Concurrency),
			assembler.WithSkipOnError(cfg.Transcription.OnError == config.OnErrorSkip),
		),
		Client: client,
		PDF:    render.NewPDF(cfg.Render.WkhtmltopdfPath, cfg.Paths.Temp, exec, log),
		Logger: log,
	}, nil
}

// newJobID returns a time-ordered id used for logs and scratch dir names
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

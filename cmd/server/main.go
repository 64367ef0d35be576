package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/httpserver"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Cancelled on SIGINT/SIGTERM; in-flight uploads are cancelled with it
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "Meeting Minutes web server")
	log.Info(ctx, "Transcription: %s backend, summarizer: %s (%s)",
		cfg.Transcription.Backend, cfg.Summarizer.Provider, cfg.Summarizer.Model)

	p, err := pipeline.Build(ctx, cfg, executor.New(), log)
	if err != nil {
		log.Error(ctx, "Failed to build pipeline: %v", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Server, p, log)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	log.Info(context.Background(), "Server stopped")
}

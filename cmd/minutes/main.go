package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/assembler"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

func main() {
	var (
		configPath     string
		inPath         string
		date           string
		attendees      string
		topic          string
		outDir         string
		transcriptOnly bool
	)
	flag.StringVar(&configPath, "config", "config.yaml", "path to config file")
	flag.StringVar(&inPath, "in", "", "recording to process (.wav, .m4a, .mp4)")
	flag.StringVar(&date, "date", time.Now().Format(time.DateOnly), "meeting date")
	flag.StringVar(&attendees, "attendees", "", "comma separated attendees")
	flag.StringVar(&topic, "topic", "", "meeting topic")
	flag.StringVar(&outDir, "out", "", "directory for minutes .md and .pdf (optional)")
	flag.BoolVar(&transcriptOnly, "transcript-only", false, "stop after transcription")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "missing -in")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(configPath, inPath, outDir, transcriptOnly, pipeline.Job{
		Date:      date,
		Attendees: attendees,
		Topic:     topic,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, inPath, outDir string, transcriptOnly bool, job pipeline.Job) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level)

	job.Asset, err = media.ReadAsset(inPath)
	if err != nil {
		return err
	}

	build := pipeline.Build
	if transcriptOnly {
		build = pipeline.BuildTranscriber
	}
	p, err := build(ctx, cfg, executor.New(), log)
	if err != nil {
		return err
	}

	if transcriptOnly {
		tr, err := p.Transcribe(ctx, job.Asset)
		if err != nil {
			return err
		}
		printRun(tr)
		return nil
	}

	res, procErr := p.Process(ctx, job)
	if res != nil {
		printRun(res.Run)
	}
	if procErr != nil {
		return procErr
	}

	fmt.Println()
	fmt.Println(res.SummaryMarkdown)

	if outDir == "" {
		return nil
	}
	return writeOutputs(ctx, p, res, outDir, inPath)
}

func printRun(run *assembler.Run) {
	fmt.Println("Transcript:")
	fmt.Println(run.Transcript)
	fmt.Println()
	for _, line := range run.Lines() {
		fmt.Println(line)
	}
	if run.Halted() {
		fmt.Fprintf(os.Stderr, "Transcription halted: %s\n", run.HaltReason)
	}
}

func writeOutputs(ctx context.Context, p pipeline.Pipeline, res *pipeline.Result, outDir, inPath string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))

	mdPath := filepath.Join(outDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(res.SummaryMarkdown), 0644); err != nil {
		return fmt.Errorf("write minutes: %w", err)
	}

	pdf, err := p.RenderPDF(ctx, res.SummaryHTML)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	pdfPath := filepath.Join(outDir, base+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", mdPath, pdfPath)
	return nil
}

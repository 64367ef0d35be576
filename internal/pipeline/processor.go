package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/assembler"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/render"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
)

var errNoSummarizer = errors.New("pipeline has no summarizer")

func (p *implPipeline) Transcribe(ctx context.Context, asset media.Asset) (*assembler.Run, error) {
	return p.transcribe(ctx, newJobID(), asset)
}

// Process orchestrates the entire meeting-minutes pipeline
func (p *implPipeline) Process(ctx context.Context, job Job) (*Result, error) {
	startTime := time.Now()
	if job.ID == "" {
		job.ID = newJobID()
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting job %s: %s", job.ID, job.Asset.Name)
	p.logger.Info(ctx, "========================================")

	// Step 1: Transcribe
	run, err := p.transcribe(ctx, job.ID, job.Asset)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	result := &Result{JobID: job.ID, Run: run}

	if run.Halted() {
		p.logger.Warn(ctx, "Continuing with partial transcript (%d chunks)", len(run.Chunks))
	}

	// Step 2: Summarize
	if p.summarizer == nil {
		return result, errNoSummarizer
	}
	summary, err := p.summarizer.Summarize(ctx, summarizer.Request{
		Transcript: run.Transcript,
		Date:       job.Date,
		Attendees:  job.Attendees,
		Topic:      job.Topic,
	})
	if err != nil {
		return result, fmt.Errorf("summarize: %w", err)
	}
	result.SummaryMarkdown = summary

	// Step 3: Render markdown
	html, err := render.Markdown(summary)
	if err != nil {
		return result, err
	}
	result.SummaryHTML = html

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Job %s finished (%s, %d chunks) in %s", job.ID, run.State, len(run.Chunks), time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return result, nil
}

func (p *implPipeline) RenderPDF(ctx context.Context, summaryHTML string) ([]byte, error) {
	return p.pdf.Render(ctx, render.Document(summaryHTML))
}

// transcribe runs normalize -> walk -> assemble inside a scratch dir owned by the job
func (p *implPipeline) transcribe(ctx context.Context, jobID string, asset media.Asset) (*assembler.Run, error) {
	// reject before touching disk or any service
	if _, err := media.ValidateFormat(asset.Name); err != nil {
		return nil, err
	}

	scratch, err := media.NewScratch(p.cfg.Paths.Temp, jobID)
	if err != nil {
		return nil, err
	}
	defer p.releaseScratch(ctx, scratch)

	audio, err := p.normalizer.Normalize(ctx, asset, scratch)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	defer audio.Close()

	window := p.cfg.Transcription.Window()
	spans, err := media.Plan(audio.Duration(), window)
	if err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Audio duration %s: %d chunks of %s", audio.Duration(), len(spans), window)

	walker, err := media.NewWalker(audio, window)
	if err != nil {
		return nil, err
	}

	return p.assembler.Run(ctx, walker, p.client)
}

// releaseScratch removes the job's scratch dir, logs warning if fails
func (p *implPipeline) releaseScratch(ctx context.Context, s *media.Scratch) {
	if err := s.Release(); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup scratch dir %s: %v", s.Dir(), err)
	} else {
		p.logger.Debug(ctx, "Cleaned up scratch dir: %s", s.Dir())
	}
}

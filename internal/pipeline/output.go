package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/render"
	"gopkg.in/yaml.v3"
)

// sidecar is the optional <name>.yaml dropped next to a recording
type sidecar struct {
	Date      string `yaml:"date"`
	Attendees string `yaml:"attendees"`
	Topic     string `yaml:"topic"`
}

const notSpecified = "Not specified"

// ProcessFile runs the full pipeline for a recording on disk.
// The transcript is written even when summarization fails.
func (p *implPipeline) ProcessFile(ctx context.Context, path string) error {
	startTime := time.Now()

	asset, err := media.ReadAsset(path)
	if err != nil {
		return fmt.Errorf("read asset: %w", err)
	}

	job, err := p.jobFor(ctx, path, asset)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	res, procErr := p.Process(ctx, job)
	if res == nil {
		return procErr
	}

	// Step 1: Transcript, always kept
	txtPath := p.outputPath(base, ".txt")
	if err := os.WriteFile(txtPath, []byte(transcriptText(res)), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	p.logger.Info(ctx, "Output transcript: %s", txtPath)

	docxPath := p.outputPath(base+"_transcript", ".docx")
	if err := render.TranscriptDOCX(job.Topic, res.Run.Transcript, res.Run.Lines(), docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript DOCX: %v", err)
	}

	if procErr != nil {
		return procErr
	}

	// Step 2: Minutes markdown
	mdPath := p.outputPath(base, ".md")
	if err := os.WriteFile(mdPath, []byte(res.SummaryMarkdown), 0644); err != nil {
		return fmt.Errorf("write minutes: %w", err)
	}
	p.logger.Info(ctx, "Output minutes: %s", mdPath)

	// Step 3: PDF and DOCX are best effort
	if pdf, err := p.RenderPDF(ctx, res.SummaryHTML); err != nil {
		p.logger.Warn(ctx, "Failed to render PDF: %v", err)
	} else if err := os.WriteFile(p.outputPath(base, ".pdf"), pdf, 0644); err != nil {
		p.logger.Warn(ctx, "Failed to write PDF: %v", err)
	}

	if err := render.MinutesDOCX(job.Topic, res.SummaryMarkdown, p.outputPath(base, ".docx")); err != nil {
		p.logger.Warn(ctx, "Failed to write DOCX: %v", err)
	}

	// Step 4: Move original recording (and its sidecar) to archived folder
	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}
	if sc := sidecarPath(path); fileExists(sc) {
		if err := p.moveToArchived(ctx, sc); err != nil {
			p.logger.Warn(ctx, "Failed to move sidecar to archived folder: %v", err)
		}
	}

	p.logger.Info(ctx, "Processing time for %s: %s", filepath.Base(path), time.Since(startTime))
	return nil
}

// jobFor builds the job header from the sidecar, falling back to file details
func (p *implPipeline) jobFor(ctx context.Context, path string, asset media.Asset) (Job, error) {
	job := Job{
		ID:        newJobID(),
		Asset:     asset,
		Attendees: notSpecified,
		Topic:     strings.TrimSuffix(asset.Name, filepath.Ext(asset.Name)),
	}
	if info, err := os.Stat(path); err == nil {
		job.Date = info.ModTime().Format(time.DateOnly)
	}

	meta, err := readSidecar(sidecarPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return job, nil
	}
	if err != nil {
		return Job{}, err
	}

	p.logger.Debug(ctx, "Loaded sidecar metadata for %s", asset.Name)
	if meta.Date != "" {
		job.Date = meta.Date
	}
	if meta.Attendees != "" {
		job.Attendees = meta.Attendees
	}
	if meta.Topic != "" {
		job.Topic = meta.Topic
	}
	return job, nil
}

func readSidecar(path string) (sidecar, error) {
	var meta sidecar
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("parse sidecar %s: %w", path, err)
	}
	return meta, nil
}

func sidecarPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".yaml"
}

func (p *implPipeline) outputPath(base, ext string) string {
	return filepath.Join(p.cfg.Paths.Output, base+ext)
}

// transcriptText is the full transcript followed by the per-chunk list
func transcriptText(res *Result) string {
	var b strings.Builder
	b.WriteString(res.Run.Transcript)
	b.WriteString("\n\n")
	for _, line := range res.Run.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if res.Run.Halted() {
		fmt.Fprintf(&b, "\nTranscription halted: %s\n", res.Run.HaltReason)
	}
	return b.String()
}

// moveToArchived moves a processed file into the archived folder
func (p *implPipeline) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	dest := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		// If rename fails (cross-device), copy instead
		if err := copyFile(path, dest); err != nil {
			return fmt.Errorf("move to archived: %w", err)
		}
		return os.Remove(path)
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

type implPDF struct {
	binary   string
	tempRoot string
	executor executor.Executor
	logger   logger.Logger
}

// NewPDF creates a PDFRenderer backed by the wkhtmltopdf binary
func NewPDF(binary, tempRoot string, exec executor.Executor, log logger.Logger) PDFRenderer {
	if binary == "" {
		binary = "wkhtmltopdf"
	}
	return &implPDF{
		binary:   binary,
		tempRoot: tempRoot,
		executor: exec,
		logger:   log,
	}
}

// Render writes the page into an isolated temp dir and converts it there
func (r *implPDF) Render(ctx context.Context, html string) ([]byte, error) {
	if r.tempRoot != "" {
		if err := os.MkdirAll(r.tempRoot, 0755); err != nil {
			return nil, fmt.Errorf("%w: create temp root: %w", ErrRender, err)
		}
	}
	dir, err := os.MkdirTemp(r.tempRoot, "render-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %w", ErrRender, err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "minutes.html"), []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("%w: write html: %w", ErrRender, err)
	}

	args := []string{
		"--quiet",
		"--encoding", "utf-8",
		// minutes HTML comes from the model; keep it away from local files
		"--disable-local-file-access",
		"minutes.html",
		PDFFilename,
	}
	if _, err := r.executor.ExecuteInDir(ctx, dir, r.binary, args...); err != nil {
		return nil, fmt.Errorf("%w: wkhtmltopdf: %w", ErrRender, err)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, PDFFilename))
	if err != nil {
		return nil, fmt.Errorf("%w: read pdf: %w", ErrRender, err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("%w: output is not a PDF", ErrRender)
	}

	r.logger.Debug(ctx, "Rendered PDF (%d bytes)", len(pdf))
	return pdf, nil
}

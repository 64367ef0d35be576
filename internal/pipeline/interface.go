package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/assembler"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
)

// Job is one uploaded recording plus the details printed in the minutes header
type Job struct {
	ID        string
	Asset     media.Asset
	Date      string
	Attendees string
	Topic     string
}

// Result is everything a front-end shows for a processed job
type Result struct {
	JobID           string
	Run             *assembler.Run
	SummaryMarkdown string
	SummaryHTML     string
}

// Pipeline is the single meeting-minutes core shared by every front-end
type Pipeline interface {
	// Transcribe normalizes, walks and transcribes the asset
	Transcribe(ctx context.Context, asset media.Asset) (*assembler.Run, error)
	// Process transcribes the job and summarizes the transcript.
	// When summarization or rendering fails the Result still carries the Run.
	Process(ctx context.Context, job Job) (*Result, error)
	// RenderPDF renders a summary HTML fragment as a printable PDF
	RenderPDF(ctx context.Context, summaryHTML string) ([]byte, error)
	// ProcessFile runs a job for a media file on disk and writes its outputs
	ProcessFile(ctx context.Context, path string) error
}

package assembler

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// WindowSource yields audio windows in order and io.EOF when exhausted
type WindowSource interface {
	Next() (media.Window, error)
}

// Assembler drives a WindowSource through a transcriber.Client and accumulates the run
type Assembler interface {
	Run(ctx context.Context, src WindowSource, client transcriber.Client) (*Run, error)
}

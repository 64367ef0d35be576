package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
)

// Client sends one audio window to a speech recognition service.
// Failures are reported through the Result, never retried.
type Client interface {
	Transcribe(ctx context.Context, w media.Window) Result
}

package assembler

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// State of a transcription run
type State int

const (
	StateRunning State = iota
	StateHalted
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Chunk is the outcome of one window, index-aligned with the window sequence
type Chunk struct {
	media.Span
	Result transcriber.Result
}

// Run is the accumulated result of transcribing a recording.
// A halted run still carries everything transcribed before the failing window.
type Run struct {
	State      State
	HaltReason string
	Chunks     []Chunk
	Transcript string
}

// Halted reports whether a service error stopped the run early
func (r *Run) Halted() bool {
	return r.State == StateHalted
}

// Rederive rebuilds the full transcript from the chunk list
func (r *Run) Rederive() string {
	var b strings.Builder
	for _, c := range r.Chunks {
		appendText(&b, c.Result)
	}
	return b.String()
}

// Lines renders the chunk list for minute-by-minute display
func (r *Run) Lines() []string {
	lines := make([]string, len(r.Chunks))
	for i, c := range r.Chunks {
		lines[i] = fmt.Sprintf("%s: %s", c.Span, c.Result)
	}
	return lines
}

// appendText adds a Text result to the transcript, space separated
func appendText(b *strings.Builder, res transcriber.Result) {
	if res.Kind != transcriber.KindText {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(res.Text)
}

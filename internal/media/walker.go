package media

import (
	"fmt"
	"io"
	"time"
)

// Span is the time range of one window
type Span struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// Length is End - Start
func (s Span) Length() time.Duration {
	return s.End - s.Start
}

// String renders the span the way progress logs show it, e.g. "chunk 1 (0-60s)"
func (s Span) String() string {
	return fmt.Sprintf("chunk %d (%d-%ds)", s.Index+1, int(s.Start.Seconds()), int(s.End.Seconds()))
}

// Window is one slice of audio submitted as a single recognition request
type Window struct {
	Span
	Format Format
	PCM    []byte
}

// WAV returns the window as a standalone WAV payload
func (w Window) WAV() []byte {
	return EncodeWAV(w.Format, w.PCM)
}

// Plan computes the window boundaries for an audio of the given duration
func Plan(duration, window time.Duration) ([]Span, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindowSize, window)
	}

	var spans []Span
	for start, i := time.Duration(0), 0; start < duration; start, i = start+window, i+1 {
		spans = append(spans, Span{Index: i, Start: start, End: min(start+window, duration)})
	}
	return spans, nil
}

// Walker yields consecutive windows of an Audio.
// It is lazy and single-pass; build a new Walker to start again from zero.
type Walker struct {
	audio    *Audio
	size     time.Duration
	duration time.Duration
	next     time.Duration
	index    int
	read     int64
}

// NewWalker rewinds audio and prepares to walk it in windows of the given size
func NewWalker(audio *Audio, window time.Duration) (*Walker, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindowSize, window)
	}
	if err := audio.rewind(); err != nil {
		return nil, fmt.Errorf("rewind audio: %w", err)
	}

	return &Walker{
		audio:    audio,
		size:     window,
		duration: audio.Duration(),
	}, nil
}

// Next returns the next window, or io.EOF once the start offset reaches the duration.
// The last window also carries any sub-second tail left after the truncated duration.
func (w *Walker) Next() (Window, error) {
	if w.next >= w.duration {
		return Window{}, io.EOF
	}

	start := w.next
	end := min(start+w.size, w.duration)

	to := w.audio.format.offset(end)
	if end == w.duration {
		to = w.audio.Size()
	}

	buf := make([]byte, to-w.read)
	if _, err := io.ReadFull(w.audio.data, buf); err != nil {
		return Window{}, fmt.Errorf("read window %d: %w", w.index, err)
	}

	win := Window{
		Span:   Span{Index: w.index, Start: start, End: end},
		Format: w.audio.format,
		PCM:    buf,
	}

	w.read = to
	w.next = end
	w.index++
	return win, nil
}

package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// testFormat keeps fixtures small: 100 frames per second, 200 bytes per second
var testFormat = Format{SampleRate: 100, Channels: 1, BitsPerSample: 16}

// pcmFor returns seconds of a ramp signal in format f
func pcmFor(f Format, seconds float64) []byte {
	frames := int(seconds * float64(f.SampleRate))
	pcm := make([]byte, frames*f.BlockAlign())
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}
	return pcm
}

func writeWAV(t *testing.T, dir string, f Format, seconds float64) string {
	t.Helper()
	path := filepath.Join(dir, "fixture.wav")
	if err := os.WriteFile(path, EncodeWAV(f, pcmFor(f, seconds)), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openFixture(t *testing.T, f Format, seconds float64) *Audio {
	t.Helper()
	audio, err := OpenAudio(writeWAV(t, t.TempDir(), f, seconds))
	if err != nil {
		t.Fatalf("OpenAudio() error = %v", err)
	}
	t.Cleanup(func() { audio.Close() })
	return audio
}

// fakeExecutor pretends to be ffmpeg: it writes a canonical WAV to the last argument
type fakeExecutor struct {
	mu      sync.Mutex
	calls   [][]string
	seconds float64
	err     error
}

func (e *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, append([]string{name}, args...))
	e.mu.Unlock()

	if e.err != nil {
		return "", e.err
	}
	if len(args) == 0 {
		return "", errors.New("no output path")
	}
	out := args[len(args)-1]
	return "", os.WriteFile(out, EncodeWAV(CanonicalFormat, pcmFor(CanonicalFormat, e.seconds)), 0644)
}

func (e *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return e.Execute(ctx, name, args...)
}

func (e *fakeExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

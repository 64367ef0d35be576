package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/meeting-minutes/internal/assembler"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// canonicalWAV returns seconds of silence in the canonical format
func canonicalWAV(seconds int) []byte {
	pcm := make([]byte, seconds*media.CanonicalFormat.BytesPerSecond())
	return media.EncodeWAV(media.CanonicalFormat, pcm)
}

// failingFFmpeg fails every command it is asked to run
type failingFFmpeg struct {
	mu    sync.Mutex
	calls int
}

func (e *failingFFmpeg) Execute(ctx context.Context, name string, args ...string) (string, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	return "", errors.New("ffmpeg: invalid data found when processing input")
}

func (e *failingFFmpeg) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return e.Execute(ctx, name, args...)
}

// fakeClient answers by window index; missing indices are Empty
type fakeClient struct {
	mu      sync.Mutex
	results map[int]transcriber.Result
	calls   int
}

func (c *fakeClient) Transcribe(ctx context.Context, w media.Window) transcriber.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if res, ok := c.results[w.Index]; ok {
		return res
	}
	return transcriber.Empty()
}

type fakeSummarizer struct {
	mu       sync.Mutex
	requests []summarizer.Request
	out      string
	err      error
}

func (s *fakeSummarizer) Summarize(ctx context.Context, req summarizer.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.out, s.err
}

type fakePDF struct {
	html string
	err  error
}

func (r *fakePDF) Render(ctx context.Context, html string) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 minutes"), nil
}

type fixture struct {
	cfg        *config.Config
	ffmpeg     *failingFFmpeg
	client     *fakeClient
	summarizer *fakeSummarizer
	pdf        *fakePDF
	pipeline   Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Transcription: config.TranscriptionConfig{WindowSeconds: 2, Concurrency: 1},
		Paths: config.PathsConfig{
			Input:    filepath.Join(root, "input"),
			Output:   filepath.Join(root, "output"),
			Archived: filepath.Join(root, "archived"),
			Temp:     filepath.Join(root, "temp"),
		},
	}
	f := &fixture{
		cfg:        cfg,
		ffmpeg:     &failingFFmpeg{},
		client:     &fakeClient{results: map[int]transcriber.Result{}},
		summarizer: &fakeSummarizer{out: "# Minutes\n\n- shipped"},
		pdf:        &fakePDF{},
	}
	log := logger.Nop()
	f.pipeline = New(cfg, Deps{
		Normalizer: media.New("ffmpeg", f.ffmpeg, log),
		Assembler:  assembler.New(log),
		Client:     f.client,
		Summarizer: f.summarizer,
		PDF:        f.pdf,
		Logger:     log,
	})
	return f
}

// scratchLeft lists anything remaining under the temp root
func (f *fixture) scratchLeft(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.cfg.Paths.Temp)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

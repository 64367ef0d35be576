package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func newRecorder() *recorder {
	return &recorder{seen: make(chan string, 16)}
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	r.paths = append(r.paths, filepath.Base(path))
	r.mu.Unlock()
	r.seen <- filepath.Base(path)
	return nil
}

func (r *recorder) wait(t *testing.T, n int) []string {
	t.Helper()
	var got []string
	for len(got) < n {
		select {
		case name := <-r.seen:
			got = append(got, name)
		case <-time.After(5 * time.Second):
			t.Fatalf("handled %v, want %d files", got, n)
		}
	}
	sort.Strings(got)
	return got
}

func startWatcher(t *testing.T, dir string, handler EventHandler) (context.CancelFunc, <-chan error) {
	t.Helper()
	w, err := New(dir, handler, logger.Nop(), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.(*implWatcher).settle = 0
	t.Cleanup(func() { w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	return cancel, done
}

func TestIsMediaFile(t *testing.T) {
	tcs := map[string]bool{
		"standup.wav":     true,
		"standup.M4A":     true,
		"call.mp4":        true,
		"standup.yaml":    false,
		"notes.txt":       false,
		"movie.mkv":       false,
		"no-extension":    false,
		"dir/archive.WAV": true,
	}
	for name, want := range tcs {
		t.Run(name, func(t *testing.T) {
			if got := isMediaFile(name); got != want {
				t.Errorf("isMediaFile(%q) = %v, want %v", name, got, want)
			}
		})
	}
}

func TestWatcherHandlesNewRecordings(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	cancel, done := startWatcher(t, dir, rec.handle)

	// give the watch loop a moment to start
	time.Sleep(100 * time.Millisecond)
	for _, name := range []string{"notes.txt", "standup.yaml", "standup.wav", "call.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got := rec.wait(t, 2)
	if got[0] != "call.mp4" || got[1] != "standup.wav" {
		t.Errorf("handled %v", got)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
}

func TestWatcherPicksUpPendingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"old.m4a", "old.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec := newRecorder()
	cancel, done := startWatcher(t, dir, rec.handle)
	defer func() {
		cancel()
		<-done
	}()

	got := rec.wait(t, 1)
	if got[0] != "old.m4a" {
		t.Errorf("handled %v", got)
	}
}

func TestWatcherWaitsForHandlersOnStop(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "long.wav"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	var finished bool
	handler := func(ctx context.Context, path string) error {
		close(started)
		<-release
		finished = true
		return nil
	}

	cancel, done := startWatcher(t, dir, handler)
	<-started
	cancel()

	select {
	case <-done:
		t.Fatal("Start() returned while a handler was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	<-done
	if !finished {
		t.Error("handler did not finish")
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Nop(), 1); err == nil {
		t.Fatal("New() error = nil, want error for missing dir")
	}
}

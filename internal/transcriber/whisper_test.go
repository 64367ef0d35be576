package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// fakeWhisper writes output to the -of prefix the way whisper.cpp does
type fakeWhisper struct {
	output  string
	err     error
	input   string
	frames  int
	rate    int
	lastArg []string
}

func (f *fakeWhisper) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.lastArg = args
	if f.err != nil {
		return "", f.err
	}

	var input, prefix string
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-f":
			input = args[i+1]
		case "-of":
			prefix = args[i+1]
		}
	}
	f.input = input
	if file, err := os.Open(input); err == nil {
		dec := wav.NewDecoder(file)
		if buf, err := dec.FullPCMBuffer(); err == nil {
			f.frames = buf.NumFrames()
			f.rate = int(dec.SampleRate)
		}
		file.Close()
	}
	return "", os.WriteFile(prefix+".txt", []byte(f.output), 0644)
}

func (f *fakeWhisper) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestWhisperTranscribe(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		want   Result
	}{
		{"speech", "\n Budget review is next week.\n Alice owns it.\n", nil, Text("Budget review is next week. Alice owns it.")},
		{"blank audio", " [BLANK_AUDIO]\n", nil, Empty()},
		{"binary failure", "", errors.New("exit status 1"), ServiceError("whisper transcribe: exit status 1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeWhisper{output: tt.output, err: tt.err}
			root := filepath.Join(t.TempDir(), "temp")
			c := NewWhisper(config.WhisperConfig{
				BinaryPath: "whisper-cli",
				ModelPath:  "models/ggml-base.en.bin",
				Threads:    4,
			}, "en", root, exec, logger.Nop())

			win := testWindow(2)
			got := c.Transcribe(context.Background(), win)
			if got != tt.want {
				t.Errorf("Transcribe() = %+v, want %+v", got, tt.want)
			}
			if tt.err != nil {
				return
			}

			if !strings.HasPrefix(exec.input, root+string(filepath.Separator)) {
				t.Errorf("window staged at %s, want under %s", exec.input, root)
			}
			wantFrames := len(win.PCM) / win.Format.BlockAlign()
			if exec.frames != wantFrames || exec.rate != win.Format.SampleRate {
				t.Errorf("whisper read %d frames at %d Hz, want %d at %d", exec.frames, exec.rate, wantFrames, win.Format.SampleRate)
			}
			if left, _ := os.ReadDir(root); len(left) != 0 {
				t.Errorf("temp root not cleaned up: %d entries left", len(left))
			}
		})
	}
}

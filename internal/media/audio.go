package media

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Audio is a decoded PCM WAV file opened for windowed reads.
// Its cursor is single-pass; do not walk the same Audio from two goroutines.
type Audio struct {
	path   string
	file   *os.File
	format Format
	data   *io.SectionReader
}

// OpenAudio opens a 16-bit PCM WAV file
func OpenAudio(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	info, err := readWAVInfo(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read wav header: %w", err)
	}
	if info.audioFormat != formatPCM || info.BitsPerSample != 16 || info.Channels < 1 || info.SampleRate < 1 {
		f.Close()
		return nil, fmt.Errorf("wav is not 16-bit PCM (format %d, %d bits, %d channels, %d Hz)",
			info.audioFormat, info.BitsPerSample, info.Channels, info.SampleRate)
	}

	return &Audio{
		path:   path,
		file:   f,
		format: info.Format,
		data:   io.NewSectionReader(f, info.dataOffset, info.dataSize),
	}, nil
}

// Path is the location of the WAV file in scratch storage
func (a *Audio) Path() string {
	return a.path
}

// Format returns the PCM layout
func (a *Audio) Format() Format {
	return a.format
}

// Size is the length of the PCM data in bytes
func (a *Audio) Size() int64 {
	return a.data.Size()
}

// Duration is the audio length truncated to whole seconds
func (a *Audio) Duration() time.Duration {
	secs := a.data.Size() / int64(a.format.BytesPerSecond())
	return time.Duration(secs) * time.Second
}

func (a *Audio) rewind() error {
	_, err := a.data.Seek(0, io.SeekStart)
	return err
}

// Close releases the underlying file
func (a *Audio) Close() error {
	return a.file.Close()
}

package media

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteFile stores the window as a standalone WAV file at path, for
// backends that read audio from disk.
func (w Window) WriteFile(path string) error {
	data, err := pcmSamples(w.Format, w.PCM)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, w.Format.SampleRate, w.Format.BitsPerSample, w.Format.Channels, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: w.Format.Channels, SampleRate: w.Format.SampleRate},
		Data:           data,
		SourceBitDepth: w.Format.BitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	// Close patches the RIFF and data sizes; it leaves f open
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return f.Close()
}

// pcmSamples unpacks little-endian PCM into one int per sample
func pcmSamples(f Format, pcm []byte) ([]int, error) {
	width := f.BitsPerSample / 8
	if width < 1 || width > 4 || f.BitsPerSample%8 != 0 {
		return nil, fmt.Errorf("unsupported bit depth %d", f.BitsPerSample)
	}

	out := make([]int, len(pcm)/width)
	for i := range out {
		b := pcm[i*width : (i+1)*width]
		switch width {
		case 1:
			// 8-bit WAV is unsigned
			out[i] = int(b[0])
		case 2:
			out[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 3:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			out[i] = int(v<<8) >> 8
		case 4:
			out[i] = int(int32(binary.LittleEndian.Uint32(b)))
		}
	}
	return out, nil
}

package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	wavHeaderSize = 44
	formatPCM     = 1
	maxChunkSize  = 0xFFFFFFFF
	// fmt body of WAVE_FORMAT_EXTENSIBLE; only the first 16 bytes are read
	maxFmtSize = 40
)

var errNotWAV = errors.New("not a RIFF/WAVE stream")

// Format describes interleaved PCM audio
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// CanonicalFormat is what every asset is normalized to: 16 kHz mono signed 16-bit PCM
var CanonicalFormat = Format{SampleRate: 16000, Channels: 1, BitsPerSample: 16}

// BlockAlign is the size of one frame in bytes
func (f Format) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// BytesPerSecond is the PCM byte rate
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.BlockAlign()
}

// offset converts a timestamp to a frame-aligned byte offset
func (f Format) offset(d time.Duration) int64 {
	frames := int64(d) * int64(f.SampleRate) / int64(time.Second)
	return frames * int64(f.BlockAlign())
}

type wavInfo struct {
	Format
	audioFormat uint16
	dataOffset  int64
	dataSize    int64
}

// readWAVInfo walks the RIFF chunks of r up to the data chunk.
// Chunk sizes come from untrusted input; nothing is allocated from them.
func readWAVInfo(r io.ReadSeeker) (wavInfo, error) {
	var info wavInfo

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return info, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return info, err
	}

	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return info, errNotWAV
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return info, errNotWAV
	}

	haveFmt := false
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return info, fmt.Errorf("wav: no data chunk: %w", err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return info, err
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return info, fmt.Errorf("wav: fmt chunk too short (%d bytes)", size)
			}
			if size > end-pos {
				return info, errNotWAV
			}
			var body [maxFmtSize]byte
			n := min(size, maxFmtSize)
			if _, err := io.ReadFull(r, body[:n]); err != nil {
				return info, fmt.Errorf("wav: read fmt chunk: %w", err)
			}
			info.audioFormat = binary.LittleEndian.Uint16(body[0:2])
			info.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true
			if _, err := r.Seek(pos+size+size%2, io.SeekStart); err != nil {
				return info, err
			}

		case "data":
			if !haveFmt {
				return info, errors.New("wav: data chunk before fmt chunk")
			}
			info.dataOffset = pos
			info.dataSize = size
			// streamed writers leave the size unset or larger than the file
			if size == maxChunkSize || pos+size > end {
				info.dataSize = end - pos
			}
			return info, nil

		default:
			if _, err := r.Seek(pos+size+size%2, io.SeekStart); err != nil {
				return info, err
			}
		}
	}
}

// IsCanonical reports whether data is already a canonical PCM WAV
func IsCanonical(data []byte) bool {
	info, err := readWAVInfo(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return info.audioFormat == formatPCM && info.Format == CanonicalFormat
}

// EncodeWAV prepends a 44-byte PCM WAV header to pcm
func EncodeWAV(f Format, pcm []byte) []byte {
	out := make([]byte, wavHeaderSize, wavHeaderSize+len(pcm))

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], formatPCM)
	binary.LittleEndian.PutUint16(out[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(f.BytesPerSecond()))
	binary.LittleEndian.PutUint16(out[32:34], uint16(f.BlockAlign()))
	binary.LittleEndian.PutUint16(out[34:36], uint16(f.BitsPerSample))

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))

	return append(out, pcm...)
}

package media

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Normalize writes the asset to scratch and decodes it to 16 kHz mono PCM WAV.
// Canonical WAV input is opened as-is without re-encoding.
func (n *implNormalizer) Normalize(ctx context.Context, asset Asset, scratch *Scratch) (*Audio, error) {
	tag := asset.Name
	if asset.Format != "" {
		tag = "." + asset.Format
	}
	format, err := ValidateFormat(tag)
	if err != nil {
		return nil, err
	}

	inputPath := scratch.Path("input." + format)
	if err := os.WriteFile(inputPath, asset.Data, 0644); err != nil {
		return nil, fmt.Errorf("write input to scratch: %w", err)
	}

	if format == "wav" && IsCanonical(asset.Data) {
		n.logger.Debug(ctx, "Input %s is already canonical PCM, skipping ffmpeg", asset.Name)
		audio, err := OpenAudio(inputPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return audio, nil
	}

	outputPath := scratch.Path("canonical.wav")

	n.logger.Info(ctx, "Extracting audio: %s (%s)", asset.Name, format)

	// -vn drops any video stream; output is 16 kHz mono signed 16-bit PCM
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(CanonicalFormat.SampleRate),
		"-ac", strconv.Itoa(CanonicalFormat.Channels),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		"-y",
		outputPath,
	}

	if _, err := n.executor.Execute(ctx, n.ffmpegPath, args...); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: ffmpeg: %w", ErrDecode, err)
	}

	audio, err := OpenAudio(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	n.logger.Info(ctx, "Audio extracted: %s (%s)", outputPath, audio.Duration())
	return audio, nil
}

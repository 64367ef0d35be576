package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for containers outside the accepted set
	ErrUnsupportedFormat = errors.New("unsupported media format")
	// ErrDecode is returned when the media cannot be decoded to canonical audio
	ErrDecode = errors.New("decode media")
	// ErrInvalidWindowSize is returned for non-positive window sizes
	ErrInvalidWindowSize = errors.New("invalid window size")
)

// SupportedFormats lists the accepted container tags
var SupportedFormats = []string{"wav", "m4a", "mp4"}

// Asset is an uploaded media file before normalization
type Asset struct {
	Name   string
	Format string
	Data   []byte
}

// ValidateFormat returns the lower-cased container tag of name, or ErrUnsupportedFormat
func ValidateFormat(name string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, f := range SupportedFormats {
		if ext == f {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q (accepted: %s)", ErrUnsupportedFormat, filepath.Base(name), strings.Join(SupportedFormats, ", "))
}

// NewAsset validates the extension of name and wraps data
func NewAsset(name string, data []byte) (Asset, error) {
	format, err := ValidateFormat(name)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Name: filepath.Base(name), Format: format, Data: data}, nil
}

// ReadAsset validates the extension of path before reading the file
func ReadAsset(path string) (Asset, error) {
	if _, err := ValidateFormat(path); err != nil {
		return Asset{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Asset{}, fmt.Errorf("read media: %w", err)
	}
	return NewAsset(path, data)
}

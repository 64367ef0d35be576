package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Scratch is an isolated per-job directory for intermediate files
type Scratch struct {
	dir  string
	once sync.Once
	err  error
}

// NewScratch creates a fresh directory under root named after jobID
func NewScratch(root, jobID string) (*Scratch, error) {
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}

	dir, err := os.MkdirTemp(root, "job-"+jobID+"-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory
func (s *Scratch) Dir() string {
	return s.dir
}

// Path returns name joined to the scratch directory
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Release removes the directory and everything in it. Safe to call more than once.
func (s *Scratch) Release() error {
	s.once.Do(func() {
		s.err = os.RemoveAll(s.dir)
	})
	return s.err
}

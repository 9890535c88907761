package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports that the recording referenced by the caller does not
// exist on disk.
var ErrNotFound = errors.New("audio file not found")

// NotFoundError carries the normalized path that failed the existence check.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "audio file not found: " + e.Path
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Stager copies transient recordings into a stable staging directory before a
// recognizer reads them, so the original handle's lifecycle cannot race the
// transcription call.
type Stager struct {
	dir string
}

func NewStager(dir string) *Stager {
	return &Stager{dir: dir}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string { return s.dir }

// Stage normalizes rawPath, verifies it exists and copies its bytes into the
// staging directory under a per-call unique name. The original file is never
// modified. The staged copy's extension follows the original, defaulting to
// .wav when the original has none.
func (s *Stager) Stage(rawPath string) (string, error) {
	path := strings.Trim(strings.TrimSpace(rawPath), `"'`)
	path = filepath.Clean(filepath.FromSlash(path))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", &NotFoundError{Path: path}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".wav"
	}
	name := fmt.Sprintf("recording_%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	staged := filepath.Join(s.dir, name)

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open recording: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(staged)
	if err != nil {
		return "", fmt.Errorf("create staged copy: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("copy recording: %w", err)
	}

	return staged, nil
}

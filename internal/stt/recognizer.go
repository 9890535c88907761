package stt

import (
	"context"
	"fmt"

	"github.com/voiceplate/voiceplate/internal/config"
)

// Result captures recognizer output.
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer abstracts STT backends. Implementations consume a staged audio
// file and return the recognized text.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) (Result, error)
}

// NewRecognizer builds the backend selected by cfg.Mode.
func NewRecognizer(cfg config.STTConfig) (Recognizer, error) {
	switch cfg.Mode {
	case "mock":
		return NewMockRecognizer(""), nil
	case "exec":
		return NewExecRecognizer(cfg)
	case "whisper":
		return NewWhisperRecognizer(cfg.ModelPath, cfg.Language)
	default:
		return nil, fmt.Errorf("unknown stt mode %q", cfg.Mode)
	}
}

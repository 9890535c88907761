package stt

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/voiceplate/voiceplate/internal/audio"
)

var (
	// ErrNoAudio reports that no recording was supplied at all.
	ErrNoAudio = errors.New("no audio detected")
	// ErrEmptySpeech reports that recognition succeeded but produced no text.
	ErrEmptySpeech = errors.New("no speech detected")
)

// RecognitionError wraps a fault raised by the recognizer itself.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return "transcription error: " + e.Err.Error()
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// Transcriber stages a recording and runs speech recognition on the staged
// copy, normalizing every failure into the taxonomy above.
type Transcriber struct {
	stager     *audio.Stager
	recognizer Recognizer
	keepStaged bool
	logger     *slog.Logger
}

func NewTranscriber(stager *audio.Stager, recognizer Recognizer, keepStaged bool, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		stager:     stager,
		recognizer: recognizer,
		keepStaged: keepStaged,
		logger:     logger.With(slog.String("component", "transcriber")),
	}
}

// Transcribe returns the trimmed recognized text for rawPath. Recognition can
// take wall-clock time proportional to the audio duration; callers treat this
// as a blocking call.
func (t *Transcriber) Transcribe(ctx context.Context, rawPath string) (string, error) {
	if strings.TrimSpace(rawPath) == "" {
		return "", ErrNoAudio
	}

	staged, err := t.stager.Stage(rawPath)
	if err != nil {
		return "", err
	}
	if !t.keepStaged {
		defer os.Remove(staged)
	}
	t.logger.Debug("staged recording", slog.String("path", staged))

	result, err := t.recognizer.Recognize(ctx, staged)
	if err != nil {
		return "", &RecognitionError{Err: err}
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", ErrEmptySpeech
	}

	t.logger.Info("transcribed", slog.Int("chars", len(text)))
	return text, nil
}

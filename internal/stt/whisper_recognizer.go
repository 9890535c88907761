//go:build whisper
// +build whisper

package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/voiceplate/voiceplate/internal/audio"
)

type whisperRecognizer struct {
	model    whisper.Model
	language string
}

// NewWhisperRecognizer loads a ggml model once and transcribes in-process via
// the whisper.cpp bindings. Audio must be 16 kHz WAV; the stager guarantees a
// stable file to read from.
func NewWhisperRecognizer(modelPath, language string) (Recognizer, error) {
	if modelPath == "" {
		return nil, errors.New("empty model path")
	}
	m, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if language == "" {
		language = "auto"
	}
	return &whisperRecognizer{model: m, language: language}, nil
}

func (r *whisperRecognizer) Recognize(ctx context.Context, audioPath string) (Result, error) {
	samples, err := audio.ReadWAVFloat32(audioPath)
	if err != nil {
		return Result{}, err
	}
	if len(samples) == 0 {
		return Result{}, errors.New("no audio samples provided")
	}

	wctx, err := r.model.NewContext()
	if err != nil {
		return Result{}, fmt.Errorf("new context: %w", err)
	}
	if err := wctx.SetLanguage(r.language); err != nil {
		return Result{}, fmt.Errorf("set language: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return Result{}, fmt.Errorf("process: %w", err)
	}

	var text string
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		s, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("next segment: %w", err)
		}
		if text == "" {
			text = s.Text
		} else {
			text += " " + s.Text
		}
	}

	return Result{Text: text}, nil
}

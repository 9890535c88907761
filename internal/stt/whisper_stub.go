//go:build !whisper
// +build !whisper

package stt

import "fmt"

// NewWhisperRecognizer stub when built without the whisper.cpp bindings.
func NewWhisperRecognizer(_, _ string) (Recognizer, error) {
	return nil, fmt.Errorf("in-process whisper not available: rebuild with -tags whisper")
}

//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// RecordCommand stub when built without portaudio support.
func RecordCommand(_ context.Context, _ string, _ int, _ *slog.Logger) (string, error) {
	return "", fmt.Errorf("microphone capture not available: rebuild with -tags portaudio")
}

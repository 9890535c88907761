//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gordonklaus/portaudio"
)

// RecordCommand captures one spoken command from the default input device and
// writes it as a WAV file under dir. Recording stops after roughly a second of
// trailing silence, or at ten seconds, whichever comes first.
func RecordCommand(ctx context.Context, dir string, sampleRate int, logger *slog.Logger) (string, error) {
	if err := portaudio.Initialize(); err != nil {
		return "", fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	framesPerBuffer := 1024
	buffer := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return "", fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return "", fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	logger.Info("recording", "sampleRate", sampleRate)

	samples := make([]int16, 0, sampleRate*5)
	silenceThreshold := int16(500)
	silenceDuration := 0
	maxSilenceFrames := sampleRate

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return "", fmt.Errorf("reading from stream: %w", err)
		}
		samples = append(samples, buffer...)

		isSilent := true
		for _, sample := range buffer {
			if sample > silenceThreshold || sample < -silenceThreshold {
				isSilent = false
				break
			}
		}
		if isSilent {
			silenceDuration += len(buffer)
		} else {
			silenceDuration = 0
		}

		if silenceDuration > maxSilenceFrames && len(samples) > sampleRate {
			break
		}
		if len(samples) > sampleRate*10 {
			break
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create recording dir: %w", err)
	}
	path := filepath.Join(dir, "mic_capture.wav")
	if err := WriteWAV(path, samples, sampleRate, 1); err != nil {
		return "", err
	}

	logger.Info("recording finished", "samples", len(samples), "path", path)
	return path, nil
}

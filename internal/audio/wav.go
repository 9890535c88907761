package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes int16 PCM samples as a 16-bit WAV file at path.
func WriteWAV(path string, samples []int16, sampleRate, channels int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	defer file.Close()

	buffer := &gaudio.IntBuffer{
		Format: &gaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   make([]int, len(samples)),
	}
	for i, s := range samples {
		buffer.Data[i] = int(s)
	}

	enc := wav.NewEncoder(file, sampleRate, 16, channels, 1)
	if err := enc.Write(buffer); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// ReadWAVFloat32 decodes a WAV file into mono float32 samples in [-1, 1],
// the layout the in-process whisper backend consumes.
func ReadWAVFloat32(path string) ([]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav file: %w", err)
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty wav file: %s", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := float32(32768)
	if buf.SourceBitDepth > 0 {
		scale = float32(int(1) << (buf.SourceBitDepth - 1))
	}

	// Downmix interleaved channels to mono.
	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += float32(buf.Data[i*channels+c]) / scale
		}
		samples[i] = sum / float32(channels)
	}
	return samples, nil
}

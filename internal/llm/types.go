package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/voiceplate/voiceplate/internal/config"
)

// Request describes a language model prompt.
type Request struct {
	Prompt      string
	System      string
	MaxTokens   int
	Temperature float64
}

// Chunk represents streamed model output.
type Chunk struct {
	Content string
	Partial bool
	Latency time.Duration
}

// Generator defines a pluggable LLM backend. Implementations deliver output
// as a sequence of chunks, in arrival order, through consumer.
type Generator interface {
	Generate(ctx context.Context, req Request, consumer func(Chunk) error) error
}

// NewGenerator builds the backend selected by cfg.Mode.
func NewGenerator(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Mode {
	case "mock":
		return NewMockGenerator(), nil
	case "openai":
		return NewOpenAIGenerator(cfg.APIKey, cfg.Model), nil
	case "ollama":
		return NewOllamaGenerator(cfg.Endpoint, cfg.Model), nil
	case "exec":
		return NewExecGenerator(cfg.Command)
	default:
		return nil, fmt.Errorf("unknown llm mode %q", cfg.Mode)
	}
}

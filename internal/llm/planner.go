package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/voiceplate/voiceplate/internal/config"
)

var (
	// ErrMissingInput reports an empty or whitespace-only prompt.
	ErrMissingInput = errors.New("no input available")
	// ErrMissingCredential reports that the selected backend requires an API
	// key and none is configured.
	ErrMissingCredential = errors.New("api key not set")
	// ErrEmptyResponse reports that the upstream stream completed but carried
	// no text.
	ErrEmptyResponse = errors.New("model returned an empty result")
)

// UpstreamError wraps a fault raised during the streaming call itself.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "meal plan API error: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Planner turns a composed prompt into a finished meal plan by streaming a
// chat completion to exhaustion and accumulating the fragments. A single
// failed attempt is final: no retry is performed.
type Planner struct {
	generator  Generator
	requireKey bool
	apiKey     string
	maxTokens  int
	temp       float64
	logger     *slog.Logger
}

func NewPlanner(cfg config.LLMConfig, generator Generator, logger *slog.Logger) *Planner {
	return &Planner{
		generator:  generator,
		requireKey: cfg.Mode == "openai",
		apiKey:     cfg.APIKey,
		maxTokens:  cfg.MaxTokens,
		temp:       cfg.Temperature,
		logger:     logger.With(slog.String("component", "planner")),
	}
}

// Generate submits prompt as a single user-role message and returns the
// accumulated, trimmed response text.
func (p *Planner) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrMissingInput
	}
	if p.requireKey && p.apiKey == "" {
		return "", ErrMissingCredential
	}

	req := Request{
		Prompt:      prompt,
		MaxTokens:   p.maxTokens,
		Temperature: p.temp,
	}

	var sb strings.Builder
	start := time.Now()
	err := p.generator.Generate(ctx, req, func(chunk Chunk) error {
		sb.WriteString(chunk.Content)
		return nil
	})
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	plan := strings.TrimSpace(sb.String())
	if plan == "" {
		return "", ErrEmptyResponse
	}

	p.logger.Info("meal plan generated",
		slog.Int("chars", len(plan)),
		slog.Duration("latency", time.Since(start)))
	return plan, nil
}

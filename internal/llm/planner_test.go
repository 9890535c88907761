package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/voiceplate/voiceplate/internal/config"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type scriptedGenerator struct {
	chunks []string
	err    error
	calls  int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ Request, consumer func(Chunk) error) error {
	g.calls++
	if g.err != nil {
		return g.err
	}
	for i, c := range g.chunks {
		if err := consumer(Chunk{Content: c, Partial: i < len(g.chunks)-1}); err != nil {
			return err
		}
	}
	return nil
}

func TestGenerateEmptyPromptSkipsBackend(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"plan"}}
	planner := NewPlanner(config.LLMConfig{Mode: "mock"}, gen, newLogger())

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := planner.Generate(context.Background(), prompt)
		if !errors.Is(err, ErrMissingInput) {
			t.Fatalf("expected ErrMissingInput for %q, got %v", prompt, err)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("expected 0 backend calls, got %d", gen.calls)
	}
}

func TestGenerateMissingCredentialSkipsBackend(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"plan"}}
	planner := NewPlanner(config.LLMConfig{Mode: "openai", APIKey: ""}, gen, newLogger())

	_, err := planner.Generate(context.Background(), "a prompt")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected 0 backend calls, got %d", gen.calls)
	}
}

func TestGenerateCredentialNotRequiredForLocalBackends(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"plan"}}
	planner := NewPlanner(config.LLMConfig{Mode: "ollama"}, gen, newLogger())

	plan, err := planner.Generate(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan != "plan" {
		t.Fatalf("unexpected plan: %q", plan)
	}
}

func TestGenerateAccumulatesChunksInOrder(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"DAY 1", " — Total", " ≈ 1198 kcal\n"}}
	planner := NewPlanner(config.LLMConfig{Mode: "mock"}, gen, newLogger())

	plan, err := planner.Generate(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan != "DAY 1 — Total ≈ 1198 kcal" {
		t.Fatalf("unexpected accumulated plan: %q", plan)
	}
	if gen.calls != 1 {
		t.Fatalf("expected exactly 1 backend call, got %d", gen.calls)
	}
}

func TestGenerateEmptyUpstreamResponse(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"  ", "\n"}}
	planner := NewPlanner(config.LLMConfig{Mode: "mock"}, gen, newLogger())

	_, err := planner.Generate(context.Background(), "a prompt")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateUpstreamFault(t *testing.T) {
	cause := errors.New("rate limited")
	gen := &scriptedGenerator{err: cause}
	planner := NewPlanner(config.LLMConfig{Mode: "mock"}, gen, newLogger())

	_, err := planner.Generate(context.Background(), "a prompt")
	var uerr *UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected single attempt with no retry, got %d", gen.calls)
	}
}

// Package mealplan sequences the transcription, profile lookup, prompt
// composition and plan generation steps behind the two front ends.
package mealplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/voiceplate/voiceplate/internal/audio"
	"github.com/voiceplate/voiceplate/internal/llm"
	"github.com/voiceplate/voiceplate/internal/profile"
	"github.com/voiceplate/voiceplate/internal/prompt"
	"github.com/voiceplate/voiceplate/internal/stt"
)

// Transcriber turns a recording reference into trimmed text.
type Transcriber interface {
	Transcribe(ctx context.Context, rawPath string) (string, error)
}

// ProfileSource returns the user's profile, or nil when it is unavailable.
type ProfileSource interface {
	Fetch(ctx context.Context, userID int64) *profile.Profile
}

// Generator turns a composed prompt into finished plan text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PlanRequest is the service front end's input: all body attributes arrive in
// the request instead of being fetched, and the user intent is a fitness goal.
type PlanRequest struct {
	ID       int64
	Age      int
	HeightCm float64
	WeightKg float64
	Gender   string
	Goal     string
}

type Service struct {
	transcriber Transcriber
	profiles    ProfileSource
	planner     Generator
	logger      *slog.Logger
	tracer      trace.Tracer
}

func New(transcriber Transcriber, profiles ProfileSource, planner Generator, logger *slog.Logger) *Service {
	return &Service{
		transcriber: transcriber,
		profiles:    profiles,
		planner:     planner,
		logger:      logger.With(slog.String("component", "mealplan")),
		tracer:      otel.Tracer("github.com/voiceplate/voiceplate/internal/mealplan"),
	}
}

// Run executes the interactive workflow: (userID, recording) in, (transcript
// or failure message, plan or failure message) out. Transcription failures
// are terminal; a missing profile only degrades the prompt; a generation
// failure becomes the plan text itself. Run never returns an error — both
// values are always renderable.
func (s *Service) Run(ctx context.Context, userID int64, rawAudioPath string) (string, string) {
	ctx, span := s.tracer.Start(ctx, "mealplan.Run",
		trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	transcript, err := s.transcriber.Transcribe(ctx, rawAudioPath)
	if err != nil {
		s.logger.Warn("transcription failed", slog.String("error", err.Error()))
		span.AddEvent("transcription failed")
		return transcriptionFailureText(err), ""
	}

	p := s.profiles.Fetch(ctx, userID)
	if p == nil {
		s.logger.Info("profile unavailable, proceeding without body data",
			slog.Int64("user_id", userID))
	}

	composed := prompt.FromSpeech(p, transcript)

	plan, err := s.planner.Generate(ctx, composed)
	if err != nil {
		s.logger.Warn("plan generation failed", slog.String("error", err.Error()))
		span.AddEvent("generation failed")
		return transcript, planFailureText(err)
	}

	return transcript, plan
}

// PlanForRequest executes the service workflow: the prompt is composed from
// the request body and the synthesized goal instruction, with no
// transcription or profile lookup involved.
func (s *Service) PlanForRequest(ctx context.Context, req PlanRequest) (string, error) {
	ctx, span := s.tracer.Start(ctx, "mealplan.PlanForRequest",
		trace.WithAttributes(
			attribute.Int64("user.id", req.ID),
			attribute.String("goal", req.Goal)))
	defer span.End()

	composed := prompt.FromGoal(req.Age, req.HeightCm, req.WeightKg, req.Gender, req.Goal)
	return s.planner.Generate(ctx, composed)
}

func transcriptionFailureText(err error) string {
	var nfe *audio.NotFoundError
	switch {
	case errors.Is(err, stt.ErrNoAudio):
		return "No audio detected"
	case errors.As(err, &nfe):
		return fmt.Sprintf("Audio file not found: %s", nfe.Path)
	case errors.Is(err, stt.ErrEmptySpeech):
		return "No speech detected"
	default:
		var rerr *stt.RecognitionError
		if errors.As(err, &rerr) {
			return fmt.Sprintf("Transcription error: %v", rerr.Err)
		}
		return fmt.Sprintf("Transcription error: %v", err)
	}
}

func planFailureText(err error) string {
	switch {
	case errors.Is(err, llm.ErrMissingInput):
		return "No input available. Please provide user ID and record your speech."
	case errors.Is(err, llm.ErrMissingCredential):
		return "Error: API key not set."
	case errors.Is(err, llm.ErrEmptyResponse):
		return "The meal plan generator returned an empty result."
	default:
		var uerr *llm.UpstreamError
		if errors.As(err, &uerr) {
			return fmt.Sprintf("Meal plan API error: %v", uerr.Err)
		}
		return fmt.Sprintf("Meal plan API error: %v", err)
	}
}

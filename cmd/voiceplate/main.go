// voiceplate runs the interactive workflow once: take a recording (a file
// path or a fresh microphone capture), transcribe it, fetch the user's body
// data and print the generated 7-day meal plan. Pipeline failures are printed
// in place of the transcript or plan rather than aborting the program.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/voiceplate/voiceplate/internal/audio"
	"github.com/voiceplate/voiceplate/internal/config"
	"github.com/voiceplate/voiceplate/internal/llm"
	"github.com/voiceplate/voiceplate/internal/mealplan"
	"github.com/voiceplate/voiceplate/internal/profile"
	"github.com/voiceplate/voiceplate/internal/stt"
)

var version = "0.1.0-dev"

func main() {
	var (
		configPath  string
		envPath     string
		userID      int64
		audioPath   string
		record      bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "voiceplate.yaml", "Path to configuration file")
	flag.StringVar(&envPath, "env", ".env", "Path to env file with credentials")
	flag.Int64Var(&userID, "user", 0, "User ID for the profile lookup")
	flag.StringVar(&audioPath, "audio", "", "Path to a recorded audio file")
	flag.BoolVar(&record, "record", false, "Capture audio from the microphone instead of -audio")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	_ = godotenv.Load(envPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	svc, err := buildService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build service: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if record {
		captured, err := audio.RecordCommand(ctx, cfg.Audio.StagingDir, cfg.Audio.SampleRate, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "recording failed: %v\n", err)
			os.Exit(1)
		}
		audioPath = captured
	}

	transcript, plan := svc.Run(ctx, userID, audioPath)

	fmt.Println("Transcription:")
	fmt.Println(transcript)
	fmt.Println()
	fmt.Println("Meal Plan:")
	fmt.Println(plan)
}

func buildService(cfg config.Config, logger *slog.Logger) (*mealplan.Service, error) {
	recognizer, err := stt.NewRecognizer(cfg.STT)
	if err != nil {
		return nil, fmt.Errorf("stt: %w", err)
	}
	stager := audio.NewStager(cfg.Audio.StagingDir)
	transcriber := stt.NewTranscriber(stager, recognizer, cfg.Audio.KeepStaged, logger)

	fetcher := profile.NewFetcher(cfg.Profile.BaseURL,
		time.Duration(cfg.Profile.TimeoutMS)*time.Millisecond, logger)

	generator, err := llm.NewGenerator(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	planner := llm.NewPlanner(cfg.LLM, generator, logger)

	return mealplan.New(transcriber, fetcher, planner, logger), nil
}

// voiceplated serves the meal plan API: POST /mealplan, GET /health and a
// /docs page, plus a Prometheus metrics listener.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/voiceplate/voiceplate/internal/config"
	"github.com/voiceplate/voiceplate/internal/runtime"
)

var version = "0.1.0-dev"

func main() {
	var (
		configPath  string
		envPath     string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "voiceplate.yaml", "Path to configuration file")
	flag.StringVar(&envPath, "env", ".env", "Path to env file with credentials")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	// Missing env file is fine; credentials may arrive via the environment.
	_ = godotenv.Load(envPath)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("starting",
		slog.String("service", cfg.ServiceName),
		slog.String("stt_mode", cfg.STT.Mode),
		slog.String("llm_mode", cfg.LLM.Mode),
		slog.Bool("api_key_set", cfg.LLM.APIKey != ""))

	rt := runtime.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rt.Start(ctx); err != nil {
		logger.Error("runtime exited with error", slog.String("error", err.Error()))
		time.Sleep(1 * time.Second)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

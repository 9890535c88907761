// Package runtime assembles the configured components into the long-running
// meal plan daemon: telemetry, the plan service, the API server and the
// metrics endpoint, with graceful shutdown tied to the supplied context.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/voiceplate/voiceplate/internal/audio"
	"github.com/voiceplate/voiceplate/internal/config"
	"github.com/voiceplate/voiceplate/internal/llm"
	"github.com/voiceplate/voiceplate/internal/mealplan"
	"github.com/voiceplate/voiceplate/internal/profile"
	"github.com/voiceplate/voiceplate/internal/server"
	"github.com/voiceplate/voiceplate/internal/stt"
)

type Runtime struct {
	cfg           config.Config
	logger        *slog.Logger
	httpServer    *http.Server
	metricsServer *http.Server
	tracerClose   func(context.Context) error
	wg            sync.WaitGroup
}

func New(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		cfg:    cfg,
		logger: logger,
	}
}

// Start builds the component graph, serves until ctx is cancelled, then
// drains both HTTP listeners and flushes telemetry.
func (r *Runtime) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTelemetry, metricsHandler, err := setupTelemetry(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	r.tracerClose = shutdownTelemetry

	svc, err := buildService(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to build plan service: %w", err)
	}

	api := server.New(svc, r.cfg.ServiceName, r.logger)

	addr := fmt.Sprintf("%s:%d", r.cfg.HTTP.Bind, r.cfg.HTTP.Port)
	r.httpServer = &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	if metricsHandler != nil && r.cfg.Telemetry.PrometheusBind != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		r.metricsServer = &http.Server{
			Addr:              r.cfg.Telemetry.PrometheusBind,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			if err := r.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				r.logger.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
		r.logger.Info("metrics endpoint listening", slog.String("addr", r.cfg.Telemetry.PrometheusBind))
	}

	r.logger.Info("runtime started", slog.String("addr", addr))

	<-ctx.Done()
	r.logger.Info("runtime stopping")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	if r.metricsServer != nil {
		if err := r.metricsServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("metrics shutdown error", slog.String("error", err.Error()))
		}
	}
	r.wg.Wait()

	if r.tracerClose != nil {
		if err := r.tracerClose(shutdownCtx); err != nil {
			r.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	return nil
}

// buildService wires config into the full pipeline. The daemon only serves
// PlanForRequest, but the transcriber and profile fetcher are constructed the
// same way the CLI does so the two front ends cannot drift apart.
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

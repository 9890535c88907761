package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voiceplate/voiceplate/internal/mealplan"
)

const requestTimeout = 120 * time.Second

// PlanService is the slice of the orchestrator the HTTP front end needs.
type PlanService interface {
	PlanForRequest(ctx context.Context, req mealplan.PlanRequest) (string, error)
}

type mealPlanRequest struct {
	ID     int64   `json:"id"`
	Age    int     `json:"age"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Gender string  `json:"gender"`
	Goal   string  `json:"goal"`
}

type mealPlanResponse struct {
	MealPlan string `json:"meal_plan"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Server exposes the meal-plan workflow over HTTP.
type Server struct {
	service     PlanService
	serviceName string
	logger      *slog.Logger
	requests    metric.Int64Counter
}

func New(service PlanService, serviceName string, logger *slog.Logger) *Server {
	meter := otel.Meter("github.com/voiceplate/voiceplate/internal/server")
	requests, err := meter.Int64Counter("voiceplate.mealplan.requests",
		metric.WithDescription("Meal plan requests by outcome"))
	if err != nil {
		logger.Warn("failed to register request counter", slog.String("error", err.Error()))
	}
	return &Server{
		service:     service,
		serviceName: serviceName,
		logger:      logger.With(slog.String("component", "http")),
		requests:    requests,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mealplan", s.handleMealPlan)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/docs", s.handleDocs)
	mux.HandleFunc("/", s.handleRoot)
	return mux
}

func (s *Server) handleMealPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Goal != "CUT" && req.Goal != "BULK" {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("goal must be CUT or BULK, got %q", req.Goal))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	plan, err := s.service.PlanForRequest(ctx, mealplan.PlanRequest{
		ID:       req.ID,
		Age:      req.Age,
		HeightCm: req.Height,
		WeightKg: req.Weight,
		Gender:   req.Gender,
		Goal:     req.Goal,
	})
	if err != nil {
		s.count(r.Context(), "error")
		s.logger.Error("meal plan generation failed",
			slog.Int64("user_id", req.ID),
			slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error generating meal plan: %v", err))
		return
	}

	s.count(r.Context(), "ok")
	s.writeJSON(w, http.StatusOK, mealPlanResponse{MealPlan: plan})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: s.serviceName})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.Redirect(w, r, "/docs", http.StatusTemporaryRedirect)
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, docsPage)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *Server) count(ctx context.Context, outcome string) {
	if s.requests == nil {
		return
	}
	s.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

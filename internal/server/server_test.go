package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voiceplate/voiceplate/internal/config"
	"github.com/voiceplate/voiceplate/internal/llm"
	"github.com/voiceplate/voiceplate/internal/mealplan"
	"github.com/voiceplate/voiceplate/internal/server"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeService struct {
	plan string
	err  error
	last mealplan.PlanRequest
}

func (f *fakeService) PlanForRequest(_ context.Context, req mealplan.PlanRequest) (string, error) {
	f.last = req
	return f.plan, f.err
}

func newTestServer(svc server.PlanService) *httptest.Server {
	return httptest.NewServer(server.New(svc, "mealplan-service", newLogger()).Handler())
}

func TestMealPlanSuccess(t *testing.T) {
	svc := &fakeService{plan: "DAY 1 — Total ≈ 1198 kcal"}
	ts := newTestServer(svc)
	defer ts.Close()

	body := `{"id":7,"age":30,"height":175,"weight":70,"gender":"MALE","goal":"BULK"}`
	resp, err := http.Post(ts.URL+"/mealplan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got struct {
		MealPlan string `json:"meal_plan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MealPlan != "DAY 1 — Total ≈ 1198 kcal" {
		t.Fatalf("unexpected meal plan: %q", got.MealPlan)
	}
	if svc.last.Goal != "BULK" || svc.last.Age != 30 {
		t.Fatalf("request not passed through: %+v", svc.last)
	}
}

func TestMealPlanEmptyResultIs500(t *testing.T) {
	// An upstream returning an empty plan surfaces as a 500 whose detail
	// names the empty result.
	quietCfg := config.LLMConfig{Mode: "mock"}
	planner := llm.NewPlanner(quietCfg, emptyGenerator{}, newLogger())
	svc := mealplan.New(nil, nil, planner, newLogger())
	ts := newTestServer(svc)
	defer ts.Close()

	body := `{"id":1,"age":25,"height":160,"weight":60,"gender":"FEMALE","goal":"CUT"}`
	resp, err := http.Post(ts.URL+"/mealplan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var got struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(got.Detail, "empty result") {
		t.Fatalf("expected detail to mention empty result, got %q", got.Detail)
	}
}

func TestMealPlanUpstreamErrorIs500(t *testing.T) {
	svc := &fakeService{err: errors.New("connection refused")}
	ts := newTestServer(svc)
	defer ts.Close()

	body := `{"id":1,"age":25,"height":160,"weight":60,"gender":"MALE","goal":"CUT"}`
	resp, err := http.Post(ts.URL+"/mealplan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var got struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(got.Detail, "Error generating meal plan") {
		t.Fatalf("unexpected detail: %q", got.Detail)
	}
}

func TestMealPlanRejectsUnknownGoal(t *testing.T) {
	ts := newTestServer(&fakeService{plan: "x"})
	defer ts.Close()

	body := `{"id":1,"age":25,"height":160,"weight":60,"gender":"MALE","goal":"TONE"}`
	resp, err := http.Post(ts.URL+"/mealplan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMealPlanRejectsGet(t *testing.T) {
	ts := newTestServer(&fakeService{plan: "x"})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/mealplan")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&fakeService{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != "healthy" || got.Service != "mealplan-service" {
		t.Fatalf("unexpected health body: %+v", got)
	}
}

func TestRootRedirectsToDocs(t *testing.T) {
	ts := newTestServer(&fakeService{})
	defer ts.Close()

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/docs" {
		t.Fatalf("expected redirect to /docs, got %q", loc)
	}
}

type emptyGenerator struct{}

func (emptyGenerator) Generate(_ context.Context, _ llm.Request, consumer func(llm.Chunk) error) error {
	return consumer(llm.Chunk{Content: ""})
}

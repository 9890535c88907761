package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaGeneratorStreamsChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"response":"Breakfast — ","done":false}` + "\n"))
		w.Write([]byte(`{"response":"268 kcal","done":true}` + "\n"))
	}))
	defer server.Close()

	gen := NewOllamaGenerator(server.URL, "llama3.2:latest")

	var sb strings.Builder
	var sawFinal bool
	err := gen.Generate(context.Background(), Request{Prompt: "plan"}, func(c Chunk) error {
		sb.WriteString(c.Content)
		if !c.Partial {
			sawFinal = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.String() != "Breakfast — 268 kcal" {
		t.Fatalf("unexpected accumulated output: %q", sb.String())
	}
	if !sawFinal {
		t.Fatal("expected a final chunk")
	}
}

func TestOllamaGeneratorStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	gen := NewOllamaGenerator(server.URL, "llama3.2:latest")
	err := gen.Generate(context.Background(), Request{Prompt: "plan"}, func(Chunk) error { return nil })
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

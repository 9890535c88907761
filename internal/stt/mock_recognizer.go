package stt

import "context"

type mockRecognizer struct {
	text string
}

// NewMockRecognizer returns a recognizer that always produces text. An empty
// text falls back to a canned development transcript.
func NewMockRecognizer(text string) Recognizer {
	if text == "" {
		text = "I want a balanced meal plan with protein-rich foods"
	}
	return &mockRecognizer{text: text}
}

func (m *mockRecognizer) Recognize(_ context.Context, _ string) (Result, error) {
	return Result{Text: m.text, Confidence: 1}, nil
}

package prompt

import (
	"strings"
	"testing"

	"github.com/voiceplate/voiceplate/internal/profile"
)

func fullProfile() *profile.Profile {
	age := 30
	height := 175.0
	weight := 70.0
	gender := "MALE"
	activity := "HIGH"
	return &profile.Profile{
		ID:            7,
		Age:           &age,
		HeightCm:      &height,
		WeightKg:      &weight,
		Gender:        &gender,
		ActivityLevel: &activity,
	}
}

func TestFromSpeechDeterministic(t *testing.T) {
	p := fullProfile()
	first := FromSpeech(p, "I want a high protein bulk plan")
	for i := 0; i < 3; i++ {
		if got := FromSpeech(p, "I want a high protein bulk plan"); got != first {
			t.Fatal("expected byte-identical output across repeated calls")
		}
	}
}

func TestFromSpeechIncludesProfile(t *testing.T) {
	out := FromSpeech(fullProfile(), "less carbs please")

	for _, want := range []string{
		"Age: 30, Height: 175 cm, Weight: 70 kg,",
		"Gender: MALE, Activity Level: HIGH",
		"User Speech:\n\"less carbs please\"",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q:\n%s", want, out)
		}
	}
}

func TestFromSpeechAbsentProfile(t *testing.T) {
	out := FromSpeech(nil, "anything")
	if !strings.Contains(out, "Body data unavailable.") {
		t.Fatal("expected unavailability marker for absent profile")
	}
}

func TestFromSpeechPartialProfile(t *testing.T) {
	age := 42
	out := FromSpeech(&profile.Profile{ID: 2, Age: &age}, "vegetarian meals")
	if !strings.Contains(out, "Age: 42") {
		t.Fatal("expected supplied age")
	}
	if !strings.Contains(out, "Height: N/A cm") || !strings.Contains(out, "Gender: N/A") {
		t.Fatalf("expected N/A markers for missing fields:\n%s", out)
	}
}

func TestPromptEmbedsSampleFormat(t *testing.T) {
	out := FromSpeech(nil, "x")
	for _, want := range []string{
		"DAY 1 — Total ≈ 1198 kcal",
		"Hydration",
		"→ Daily Total = 1198 kcal",
		"Output 7 full days",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing exemplar fragment %q", want)
		}
	}
}

func TestFromGoal(t *testing.T) {
	out := FromGoal(28, 180, 82.5, "FEMALE", "CUT")

	for _, want := range []string{
		"Age: 28 years",
		"Height: 180 cm",
		"Weight: 82.5 kg",
		"Fitness Goal: CUT",
		"their goal of cuting",
		"gender (FEMALE)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q:\n%s", want, out)
		}
	}

	if out != FromGoal(28, 180, 82.5, "FEMALE", "CUT") {
		t.Fatal("expected deterministic output")
	}
}

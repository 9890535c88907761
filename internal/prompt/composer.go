// Package prompt renders the fixed meal-plan generation prompt. Composition is
// pure string templating: identical inputs always produce identical output.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voiceplate/voiceplate/internal/profile"
)

// NotAvailable marks a profile attribute the backend did not supply.
const NotAvailable = "N/A"

const header = `
The following information describes the user. Use BOTH the physical data and speech content to generate a personalized 7-day meal plan.

`

const rules = `

You are a diet-planning assistant. Generate a 7-day meal plan in exactly the same format and style as the sample provided below — no markdown (#, *, -), no explanations, no introductions.

IMPORTANT RULES:
- Do NOT output markdown symbols (#, *, -, etc.)
- Do NOT add commentary or disclaimers
- Do NOT explain anything before or after the plan
- ONLY output the meal plan in the exact required structure
- Include kcal values for each ingredient
- Include hydration section each day
- Include a daily total calculation line formatted as: → Daily Total = X kcal
- Use the user's dietary goal/preferences extracted from their speech
- Output 7 full days

=============== SAMPLE FORMAT (FOLLOW EXACTLY) ===============

DAY 1 — Total ≈ 1198 kcal
Breakfast — 268 kcal

1 whole egg (55 g) — 72 kcal
2 egg whites (50 g) — 26 kcal
Spinach (100 g) — 23 kcal
Tomato (120 g) — 22 kcal
Olive oil for sauté (3 ml) — 25 kcal
Method: Boiled egg + sautéed spinach & tomato.

Lunch — 422 kcal

Chicken breast (120 g) — 198 kcal
Broccoli (150 g) — 51 kcal
Quinoa, dry (40 g → ~120 g cooked) — 173 kcal
Method: Air-fried/grilled chicken, steamed broccoli, boiled quinoa.

Dinner — 331 kcal

Tofu (150 g, firm) — 117 kcal
Lettuce (120 g) — 15 kcal
Mushrooms (80 g) — 22 kcal
Olive oil (2 ml) — 18 kcal
Method: Tofu & mushroom clear soup + lettuce salad.

Hydration

Water 2 L
Green tea — 0 kcal
Vegetable broth — 50 kcal
→ Daily Total = 1198 kcal

==============================================================

Now generate **YOUR OWN 7-DAY MEAL PLAN** following this sample structure EXACTLY, reflecting the user goal.
`

// FromSpeech builds the generation prompt for the interactive flow: the
// user's physical data (or an unavailability marker when p is nil) combined
// with their transcribed speech.
func FromSpeech(p *profile.Profile, transcript string) string {
	var body string
	if p != nil {
		body = fmt.Sprintf(
			"User Body Data:\nAge: %s, Height: %s cm, Weight: %s kg,\nGender: %s, Activity Level: %s",
			intOr(p.Age), floatOr(p.HeightCm), floatOr(p.WeightKg),
			stringOr(p.Gender), stringOr(p.ActivityLevel),
		)
	} else {
		body = "User Body Data:\nBody data unavailable."
	}

	combined := fmt.Sprintf("%s\n\nUser Speech:\n%q", body, transcript)
	return header + combined + rules
}

// FromGoal builds the generation prompt for the service flow, where the body
// attributes arrive in the request and the user intent is a synthesized
// instruction referencing the fitness goal.
func FromGoal(age int, heightCm, weightKg float64, gender, goal string) string {
	combined := fmt.Sprintf(
		"User Body Data:\n"+
			"Age: %d years\n"+
			"Height: %s cm\n"+
			"Weight: %s kg\n"+
			"Gender: %s\n"+
			"Fitness Goal: %s\n\n"+
			"Instruction:\n"+
			"Generate a personalized 7-day meal plan tailored to this user's body data and fitness goal (%s). "+
			"The meal plan should support their goal of %sing, considering their age (%d years), "+
			"height (%s cm), weight (%s kg), and gender (%s).",
		age, formatFloat(heightCm), formatFloat(weightKg), gender, goal,
		goal, strings.ToLower(goal), age, formatFloat(heightCm), formatFloat(weightKg), gender,
	)
	return header + combined + rules
}

func intOr(v *int) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.Itoa(*v)
}

func floatOr(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOr(v *string) string {
	if v == nil || *v == "" {
		return NotAvailable
	}
	return *v
}

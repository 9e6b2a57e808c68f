package service

import (
	"strings"
	"testing"

	"lumo_backend/internal/model"
)

func TestCoachSystemPrompt(t *testing.T) {
	cases := []struct {
		name      string
		year      model.StudyYear
		level     model.CoachLevel
		wantYear  string
		wantLevel string
	}{
		{"third year hard", model.YearThird, model.LevelHard, "3rd year", "hard difficulty"},
		{"first year easy", model.YearFirst, model.LevelEasy, "1st year", "easy difficulty"},
		{"pro level kept", model.YearFourth, model.LevelPro, "4th year", "pro difficulty"},
		{"unknown year coerced", model.StudyYear("fifth"), model.LevelMedium, "1st year", "medium difficulty"},
		{"unknown level coerced", model.YearSecond, model.CoachLevel("impossible"), "2nd year", "medium difficulty"},
		{"zero values coerced", "", "", "1st year", "medium difficulty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prompt := CoachSystemPrompt(tc.year, tc.level)
			if !strings.Contains(prompt, tc.wantYear) {
				t.Errorf("prompt missing %q", tc.wantYear)
			}
			if !strings.Contains(prompt, tc.wantLevel) {
				t.Errorf("prompt missing %q", tc.wantLevel)
			}
		})
	}
}

func TestGenerationPrompt(t *testing.T) {
	prompt := GenerationPrompt("Acme Corp", []string{"Go", "SQL", "Docker"})

	if !strings.Contains(prompt, `"Acme Corp"`) {
		t.Error("prompt missing company name")
	}
	if !strings.Contains(prompt, "Go, SQL, Docker") {
		t.Error("prompt missing joined skill list")
	}
	for _, key := range []string{`"quiz"`, `"coding"`, `"interview"`, "correct_answer_key", "test_cases"} {
		if !strings.Contains(prompt, key) {
			t.Errorf("prompt missing schema key %s", key)
		}
	}
}

func TestAnalysisPrompt(t *testing.T) {
	conversation := "User: hello\n\nAI: hi there"
	prompt := AnalysisPrompt(conversation)

	if !strings.Contains(prompt, conversation) {
		t.Error("prompt missing conversation transcript")
	}
	if !strings.Contains(prompt, "5 elements") {
		t.Error("prompt missing list arity instruction")
	}
}

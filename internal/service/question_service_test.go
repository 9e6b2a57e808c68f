package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lumo_backend/internal/model"
)

// fakeGenerator returns a canned response and counts calls.
type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeGenerator) Configured() bool { return true }

type fakeInternships struct {
	internship *model.Internship
	err        error
}

func (f *fakeInternships) FindByID(id uint) (*model.Internship, error) {
	return f.internship, f.err
}

// fakeQuestionStore upserts into maps keyed by the natural key, so a
// second run with the same payload reports nothing created.
type fakeQuestionStore struct {
	quiz      map[string]bool
	coding    map[string]bool
	interview map[string]bool
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		quiz:      map[string]bool{},
		coding:    map[string]bool{},
		interview: map[string]bool{},
	}
}

func (f *fakeQuestionStore) UpsertQuiz(q *model.QuizQuestion) (bool, error) {
	key := fmt.Sprintf("%d/%s", q.InternshipID, q.QuestionText)
	if f.quiz[key] {
		return false, nil
	}
	f.quiz[key] = true
	return true, nil
}

func (f *fakeQuestionStore) UpsertCoding(q *model.CodingQuestion) (bool, error) {
	key := fmt.Sprintf("%d/%s", q.InternshipID, q.Title)
	if f.coding[key] {
		return false, nil
	}
	f.coding[key] = true
	return true, nil
}

func (f *fakeQuestionStore) UpsertInterview(q *model.InterviewQuestion) (bool, error) {
	key := fmt.Sprintf("%d/%s", q.InternshipID, q.QuestionText)
	if f.interview[key] {
		return false, nil
	}
	f.interview[key] = true
	return true, nil
}

func testInternship() *model.Internship {
	return &model.Internship{
		Company: "Acme Corp",
		RequiredSkills: []model.Skill{
			{Name: "Go"},
			{Name: "SQL"},
		},
	}
}

const generationReply = `{
	"quiz": [
		{"question_text": "Q1", "options": {"A": "yes", "B": "no"}, "correct_answer_key": "A"},
		{"question_text": "Q2", "options": {"A": "yes", "B": "no"}, "correct_answer_key": "D"}
	],
	"coding": [
		{"title": "Two Sum", "problem_statement": "Find two numbers.", "test_cases": {"input": "1 2", "output": "3"}}
	],
	"interview": [
		{"question_text": "Why Acme?", "suggested_answer": "Talk about the mission."}
	]
}`

func TestQuestionServiceGenerateAndStore(t *testing.T) {
	t.Run("stores parsed questions and skips dangling answer keys", func(t *testing.T) {
		store := newFakeQuestionStore()
		svc := NewQuestionService(&fakeInternships{internship: testInternship()}, store, &fakeGenerator{reply: generationReply})

		counts, err := svc.GenerateAndStore(context.Background(), 7)
		if err != nil {
			t.Fatalf("GenerateAndStore returned error: %v", err)
		}
		// Q2 points at option "D" which does not exist, so it is dropped.
		if counts.Quiz != 1 || counts.Coding != 1 || counts.Interview != 1 {
			t.Errorf("counts = %+v, want 1/1/1", counts)
		}
	})

	t.Run("second run creates nothing", func(t *testing.T) {
		store := newFakeQuestionStore()
		svc := NewQuestionService(&fakeInternships{internship: testInternship()}, store, &fakeGenerator{reply: generationReply})

		if _, err := svc.GenerateAndStore(context.Background(), 7); err != nil {
			t.Fatalf("first run: %v", err)
		}
		counts, err := svc.GenerateAndStore(context.Background(), 7)
		if err != nil {
			t.Fatalf("second run: %v", err)
		}
		if counts.Quiz != 0 || counts.Coding != 0 || counts.Interview != 0 {
			t.Errorf("second run counts = %+v, want 0/0/0", counts)
		}
	})

	t.Run("unknown internship is an error", func(t *testing.T) {
		svc := NewQuestionService(&fakeInternships{err: errors.New("record not found")}, newFakeQuestionStore(), &fakeGenerator{})
		if _, err := svc.GenerateAndStore(context.Background(), 99); err == nil {
			t.Fatal("GenerateAndStore returned nil error for unknown internship")
		}
	})

	t.Run("model failure degrades to zero counts", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("upstream down")}
		svc := NewQuestionService(&fakeInternships{internship: testInternship()}, newFakeQuestionStore(), gen)

		counts, err := svc.GenerateAndStore(context.Background(), 7)
		if err != nil {
			t.Fatalf("GenerateAndStore returned error: %v", err)
		}
		if counts != (GenerationCounts{}) {
			t.Errorf("counts = %+v, want all zero", counts)
		}
	})

	t.Run("malformed output degrades to zero counts", func(t *testing.T) {
		gen := &fakeGenerator{reply: "Sorry, I cannot help with that."}
		store := newFakeQuestionStore()
		svc := NewQuestionService(&fakeInternships{internship: testInternship()}, store, gen)

		counts, err := svc.GenerateAndStore(context.Background(), 7)
		if err != nil {
			t.Fatalf("GenerateAndStore returned error: %v", err)
		}
		if counts != (GenerationCounts{}) {
			t.Errorf("counts = %+v, want all zero", counts)
		}
		if len(store.quiz)+len(store.coding)+len(store.interview) != 0 {
			t.Error("store received items from malformed output")
		}
	})
}

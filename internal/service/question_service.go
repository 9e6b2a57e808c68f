package service

import (
	"context"
	"encoding/json"
	"fmt"

	"lumo_backend/internal/model"
	"lumo_backend/pkg/logger"

	"go.uber.org/zap"
)

// textGenerator is the slice of AIService the pipelines consume.
type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

type internshipSource interface {
	FindByID(id uint) (*model.Internship, error)
}

type questionStore interface {
	UpsertQuiz(q *model.QuizQuestion) (bool, error)
	UpsertCoding(q *model.CodingQuestion) (bool, error)
	UpsertInterview(q *model.InterviewQuestion) (bool, error)
}

// GenerationCounts reports how many records a generation run created.
// Zero everywhere is a valid outcome, not an error.
type GenerationCounts struct {
	Quiz      int `json:"quiz"`
	Coding    int `json:"coding"`
	Interview int `json:"interview"`
}

// QuestionService generates question banks for an internship with the
// AI model and stores them idempotently under their natural keys.
type QuestionService struct {
	internships internshipSource
	questions   questionStore
	ai          textGenerator
}

func NewQuestionService(internships internshipSource, questions questionStore, ai textGenerator) *QuestionService {
	return &QuestionService{
		internships: internships,
		questions:   questions,
		ai:          ai,
	}
}

// GenerateAndStore runs the full pipeline for one internship: build the
// generation prompt, call the model, parse its JSON, upsert every item
// by natural key. Question generation is best-effort enrichment, so
// model and parse failures degrade to an empty set instead of
// propagating; only an unknown internship is an error.
func (s *QuestionService) GenerateAndStore(ctx context.Context, internshipID uint) (GenerationCounts, error) {
	var counts GenerationCounts

	internship, err := s.internships.FindByID(internshipID)
	if err != nil {
		return counts, fmt.Errorf("internship %d: %w", internshipID, err)
	}

	skillNames := make([]string, 0, len(internship.RequiredSkills))
	for _, skill := range internship.RequiredSkills {
		skillNames = append(skillNames, skill.Name)
	}

	prompt := GenerationPrompt(internship.Company, skillNames)

	raw, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		logger.Log.Error("question generation model call failed",
			zap.Uint("internshipId", internshipID), zap.Error(err))
		return counts, nil
	}

	set, err := ParseQuestionSet(raw)
	if err != nil {
		logger.Log.Error("question generation output malformed",
			zap.Uint("internshipId", internshipID), zap.Error(err))
		set = EmptyQuestionSet()
	}

	for _, item := range set.Quiz {
		if item.QuestionText == "" {
			continue
		}
		if _, ok := item.Options[item.CorrectAnswerKey]; !ok {
			// The model occasionally answers with a key that is not
			// among the options; such items are unusable for grading.
			logger.Log.Warn("skipping quiz item with dangling answer key",
				zap.Uint("internshipId", internshipID),
				zap.String("answerKey", item.CorrectAnswerKey))
			continue
		}

		options, err := json.Marshal(item.Options)
		if err != nil {
			continue
		}
		created, err := s.questions.UpsertQuiz(&model.QuizQuestion{
			InternshipID:     internshipID,
			QuestionText:     item.QuestionText,
			Options:          options,
			CorrectAnswerKey: item.CorrectAnswerKey,
		})
		if err != nil {
			logger.Log.Error("failed to store quiz question", zap.Error(err))
			continue
		}
		if created {
			counts.Quiz++
		}
	}

	for _, item := range set.Coding {
		if item.Title == "" {
			continue
		}
		created, err := s.questions.UpsertCoding(&model.CodingQuestion{
			InternshipID:     internshipID,
			Title:            item.Title,
			ProblemStatement: item.ProblemStatement,
			TestCases:        item.TestCases,
		})
		if err != nil {
			logger.Log.Error("failed to store coding question", zap.Error(err))
			continue
		}
		if created {
			counts.Coding++
		}
	}

	for _, item := range set.Interview {
		if item.QuestionText == "" {
			continue
		}
		created, err := s.questions.UpsertInterview(&model.InterviewQuestion{
			InternshipID:    internshipID,
			QuestionText:    item.QuestionText,
			SuggestedAnswer: item.SuggestedAnswer,
		})
		if err != nil {
			logger.Log.Error("failed to store interview question", zap.Error(err))
			continue
		}
		if created {
			counts.Interview++
		}
	}

	logger.Log.Info("question generation completed",
		zap.Uint("internshipId", internshipID),
		zap.Int("quiz", counts.Quiz),
		zap.Int("coding", counts.Coding),
		zap.Int("interview", counts.Interview))

	return counts, nil
}

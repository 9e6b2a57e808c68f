package service

import (
	"errors"

	"lumo_backend/internal/model"
	"lumo_backend/internal/repository"
	"lumo_backend/internal/util"

	"gorm.io/gorm"
)

type InternshipService struct {
	internshipRepo *repository.InternshipRepository
	questionRepo   *repository.QuestionRepository
}

func NewInternshipService(internshipRepo *repository.InternshipRepository, questionRepo *repository.QuestionRepository) *InternshipService {
	return &InternshipService{
		internshipRepo: internshipRepo,
		questionRepo:   questionRepo,
	}
}

func (s *InternshipService) List(skill string, page, limit int) ([]model.Internship, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.internshipRepo.List(skill, page, limit)
}

// InternshipDetail bundles an internship with its recommended projects.
type InternshipDetail struct {
	Internship *model.Internship          `json:"internship"`
	Projects   []model.RecommendedProject `json:"projects"`
}

func (s *InternshipService) Detail(id uint) (*InternshipDetail, error) {
	internship, err := s.internshipRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInternshipNotFound
		}
		return nil, err
	}

	projects, err := s.internshipRepo.FindProjects(id)
	if err != nil {
		return nil, err
	}

	return &InternshipDetail{
		Internship: internship,
		Projects:   projects,
	}, nil
}

// QuestionBank is the full set of stored questions for one internship.
type QuestionBank struct {
	Quiz      []model.QuizQuestion      `json:"quiz"`
	Coding    []model.CodingQuestion    `json:"coding"`
	Interview []model.InterviewQuestion `json:"interview"`
}

func (s *InternshipService) Questions(id uint) (*QuestionBank, error) {
	if _, err := s.internshipRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInternshipNotFound
		}
		return nil, err
	}

	quiz, err := s.questionRepo.QuizByInternship(id)
	if err != nil {
		return nil, err
	}
	coding, err := s.questionRepo.CodingByInternship(id)
	if err != nil {
		return nil, err
	}
	interview, err := s.questionRepo.InterviewByInternship(id)
	if err != nil {
		return nil, err
	}

	return &QuestionBank{
		Quiz:      quiz,
		Coding:    coding,
		Interview: interview,
	}, nil
}

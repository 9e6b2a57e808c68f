package repository

import (
	"lumo_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// UpsertQuiz creates the question only if (internship_id, question_text)
// does not exist yet. Returns true when a new row was created, so
// generation reruns can report counts without duplicating records.
func (r *QuestionRepository) UpsertQuiz(q *model.QuizQuestion) (bool, error) {
	var existing model.QuizQuestion
	err := r.DB.Where("internship_id = ? AND question_text = ?", q.InternshipID, q.QuestionText).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	return true, r.DB.Create(q).Error
}

// UpsertCoding keys on (internship_id, title).
func (r *QuestionRepository) UpsertCoding(q *model.CodingQuestion) (bool, error) {
	var existing model.CodingQuestion
	err := r.DB.Where("internship_id = ? AND title = ?", q.InternshipID, q.Title).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	return true, r.DB.Create(q).Error
}

// UpsertInterview keys on (internship_id, question_text).
func (r *QuestionRepository) UpsertInterview(q *model.InterviewQuestion) (bool, error) {
	var existing model.InterviewQuestion
	err := r.DB.Where("internship_id = ? AND question_text = ?", q.InternshipID, q.QuestionText).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	return true, r.DB.Create(q).Error
}

func (r *QuestionRepository) QuizByInternship(internshipID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("internship_id = ?", internshipID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CodingByInternship(internshipID uint) ([]model.CodingQuestion, error) {
	var questions []model.CodingQuestion
	err := r.DB.Where("internship_id = ?", internshipID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) InterviewByInternship(internshipID uint) ([]model.InterviewQuestion, error) {
	var questions []model.InterviewQuestion
	err := r.DB.Where("internship_id = ?", internshipID).Find(&questions).Error
	return questions, err
}

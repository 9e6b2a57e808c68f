package model

import "encoding/json"

// QuizQuestion is a multiple-choice question generated for an internship.
// (internship_id, question_text) is the natural key used for idempotent
// upserts during AI generation.
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	InternshipID     uint            `gorm:"index;type:bigint unsigned" json:"internshipId"`
	QuestionText     string          `gorm:"type:text;not null" json:"questionText"`
	Options          json.RawMessage `gorm:"type:json" json:"options"` // JSON: {"A": "...", "B": "..."}
	CorrectAnswerKey string          `gorm:"size:10" json:"correctAnswerKey"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// CodingQuestion keys on (internship_id, title).
// swagger:model CodingQuestion
type CodingQuestion struct {
	BaseModel
	InternshipID     uint            `gorm:"index;type:bigint unsigned" json:"internshipId"`
	Title            string          `gorm:"size:255;not null" json:"title"`
	ProblemStatement string          `gorm:"type:text" json:"problemStatement"`
	TestCases        json.RawMessage `gorm:"type:json" json:"testCases"` // opaque, shape is advisory
}

func (CodingQuestion) TableName() string {
	return "coding_questions"
}

// InterviewQuestion keys on (internship_id, question_text).
// swagger:model InterviewQuestion
type InterviewQuestion struct {
	BaseModel
	InternshipID    uint   `gorm:"index;type:bigint unsigned" json:"internshipId"`
	QuestionText    string `gorm:"type:text;not null" json:"questionText"`
	SuggestedAnswer string `gorm:"type:text" json:"suggestedAnswer"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}

package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// StudyYear is the student's year of study. Unknown values are coerced
// to YearFirst when building coach prompts.
type StudyYear string

const (
	YearFirst  StudyYear = "first"
	YearSecond StudyYear = "second"
	YearThird  StudyYear = "third"
	YearFourth StudyYear = "fourth"
)

// CoachLevel is the interview coach difficulty preference.
type CoachLevel string

const (
	LevelEasy   CoachLevel = "easy"
	LevelMedium CoachLevel = "medium"
	LevelHard   CoachLevel = "hard"
	LevelPro    CoachLevel = "pro"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	Year      StudyYear  `gorm:"type:enum('first','second','third','fourth');default:'first'" json:"year"`
	Level     CoachLevel `gorm:"type:enum('easy','medium','hard','pro');default:'medium'" json:"level"`
	ResumeURL string     `gorm:"size:255" json:"resumeUrl"`
	Skills    []Skill    `gorm:"many2many:user_skills" json:"skills"`
	LastLogin time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

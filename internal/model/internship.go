package model

// swagger:model Internship
type Internship struct {
	BaseModel
	Title          string  `gorm:"size:255;not null" json:"title"`
	Company        string  `gorm:"size:255;not null" json:"company"`
	Description    string  `gorm:"type:text" json:"description"`
	Location       string  `gorm:"size:255" json:"location"`
	Stipend        float64 `gorm:"default:0" json:"stipend"`
	Duration       string  `gorm:"size:50" json:"duration"`
	RequiredSkills []Skill `gorm:"many2many:internship_skills" json:"requiredSkills"`
}

func (Internship) TableName() string {
	return "internships"
}

// RecommendedProject is a practice project suggested for an internship.
type RecommendedProject struct {
	BaseModel
	InternshipID uint    `gorm:"index;type:bigint unsigned" json:"internshipId"`
	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	SkillsToGain []Skill `gorm:"many2many:project_skills" json:"skillsToGain"`
}

func (RecommendedProject) TableName() string {
	return "recommended_projects"
}

package model

// swagger:model Skill
type Skill struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

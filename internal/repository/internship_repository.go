package repository

import (
	"lumo_backend/internal/model"

	"gorm.io/gorm"
)

type InternshipRepository struct {
	DB *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) *InternshipRepository {
	return &InternshipRepository{DB: db}
}

func (r *InternshipRepository) FindByID(id uint) (*model.Internship, error) {
	var internship model.Internship
	err := r.DB.Preload("RequiredSkills").First(&internship, id).Error
	return &internship, err
}

// List returns a page of internships, optionally filtered by a required
// skill name.
func (r *InternshipRepository) List(skill string, page, limit int) ([]model.Internship, int64, error) {
	var internships []model.Internship
	var total int64

	db := r.DB.Model(&model.Internship{})
	if skill != "" {
		db = db.Joins("JOIN internship_skills ON internship_skills.internship_id = internships.id").
			Joins("JOIN skills ON skills.id = internship_skills.skill_id").
			Where("skills.name = ?", skill)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("RequiredSkills").
		Order("internships.created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&internships).Error

	return internships, total, err
}

func (r *InternshipRepository) FindProjects(internshipID uint) ([]model.RecommendedProject, error) {
	var projects []model.RecommendedProject
	err := r.DB.Preload("SkillsToGain").
		Where("internship_id = ?", internshipID).
		Find(&projects).Error
	return projects, err
}

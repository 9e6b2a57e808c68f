package repository

import (
	"time"

	"lumo_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Skills").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

// ReplaceSkills overwrites the user's skill associations.
func (r *UserRepository) ReplaceSkills(user *model.User, skills []model.Skill) error {
	return r.DB.Model(user).Association("Skills").Replace(skills)
}

func (r *UserRepository) FindSkillsByName(names []string) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Where("name IN ?", names).Find(&skills).Error
	return skills, err
}

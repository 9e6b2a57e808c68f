package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"lumo_backend/internal/model"
	"lumo_backend/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
	}
}

// ProfileUpdate carries the editable student profile fields. Year and
// level feed the coach prompt; unknown values are tolerated here and
// coerced at prompt build time.
type ProfileUpdate struct {
	Name   string   `json:"name"`
	Year   string   `json:"year"`
	Level  string   `json:"level"`
	Skills []string `json:"skills"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Year != "" {
		user.Year = model.StudyYear(update.Year)
	}
	if update.Level != "" {
		user.Level = model.CoachLevel(update.Level)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if update.Skills != nil {
		skills, err := s.userRepo.FindSkillsByName(update.Skills)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.ReplaceSkills(user, skills); err != nil {
			return nil, err
		}
		user.Skills = skills
	}

	return user, nil
}

// UploadResume stores a resume file and records its URL on the profile.
func (s *UserService) UploadResume(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("resumes/%d/%s%s", userID, model.GenerateUUID(), filepath.Ext(filename))
	url, err := s.storage.Provider.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.ResumeURL = url
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

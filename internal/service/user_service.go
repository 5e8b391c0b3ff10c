package service

import (
	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	College  string `json:"college"`
	Course   string `json:"course"`
	Language string `json:"language"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.Repo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.College != "" {
		user.College = req.College
	}
	if req.Course != "" {
		user.Course = req.Course
	}
	if req.Language != "" {
		user.Language = req.Language
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = url
	return s.Repo.Update(user)
}

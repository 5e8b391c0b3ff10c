package service

import (
	"time"

	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"
)

type AffirmationService struct {
	Repo *repository.AffirmationRepository
}

func NewAffirmationService(repo *repository.AffirmationRepository) *AffirmationService {
	return &AffirmationService{Repo: repo}
}

// Create 新增一条短句（管理端）
func (s *AffirmationService) Create(content string) (*model.Affirmation, error) {
	a := &model.Affirmation{Content: content, IsEnabled: true}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Today 按天确定性轮换，同一天所有用户看到同一条
func (s *AffirmationService) Today() (*model.Affirmation, error) {
	list, err := s.Repo.ListEnabled()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	idx := time.Now().YearDay() % len(list)
	return &list[idx], nil
}

package repository

import (
	"brainbox_backend/internal/model"

	"gorm.io/gorm"
)

type AffirmationRepository struct {
	DB *gorm.DB
}

func NewAffirmationRepository(db *gorm.DB) *AffirmationRepository {
	return &AffirmationRepository{DB: db}
}

func (r *AffirmationRepository) ListEnabled() ([]model.Affirmation, error) {
	var list []model.Affirmation
	err := r.DB.Where("is_enabled = ?", true).Order("id asc").Find(&list).Error
	return list, err
}

func (r *AffirmationRepository) Create(a *model.Affirmation) error {
	return r.DB.Create(a).Error
}

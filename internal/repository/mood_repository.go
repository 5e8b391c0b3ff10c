package repository

import (
	"time"

	"brainbox_backend/internal/model"

	"gorm.io/gorm"
)

type MoodRepository struct {
	DB *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{DB: db}
}

func (r *MoodRepository) Create(entry *model.MoodEntry) error {
	return r.DB.Create(entry).Error
}

func (r *MoodRepository) ListByUser(userID uint, page, limit int) ([]model.MoodEntry, int64, error) {
	var entries []model.MoodEntry
	var total int64

	query := r.DB.Model(&model.MoodEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}

// CountByMoodSince 统计某时间之后各心情的打卡次数
func (r *MoodRepository) CountByMoodSince(userID uint, since time.Time) (map[string]int64, error) {
	type row struct {
		Mood  string
		Count int64
	}
	var rows []row

	err := r.DB.Model(&model.MoodEntry{}).
		Select("mood, count(*) as count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("mood").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Mood] = r.Count
	}
	return counts, nil
}

package repository

import (
	"brainbox_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(msg *model.ChatMessage) error {
	return r.DB.Create(msg).Error
}

// ListRecent 按时间倒序取最近 limit 条，调用方负责翻转成对话顺序
func (r *ChatRepository) ListRecent(userID uint, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) ClearByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.ChatMessage{}).Error
}

package model

// ChatMessage AI 陪伴聊天的单条消息
// swagger:model ChatMessage
type ChatMessage struct {
	BaseModel
	UserID  uint   `gorm:"index;not null" json:"userId"`
	Role    string `gorm:"size:20;not null" json:"role"` // user 或 assistant
	Content string `gorm:"type:text;not null" json:"content"`
	Flagged bool   `gorm:"default:false" json:"flagged"` // 触发危机关键词
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

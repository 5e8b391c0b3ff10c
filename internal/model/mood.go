package model

// MoodEntry 记录用户一次心情打卡
// swagger:model MoodEntry
type MoodEntry struct {
	BaseModel
	UserID     uint    `gorm:"index;not null" json:"userId"`
	Mood       string  `gorm:"size:20;not null" json:"mood"` // happy/calm/neutral/sad/anxious/angry
	Note       string  `gorm:"type:text" json:"note"`
	Source     string  `gorm:"size:20;default:'manual'" json:"source"` // manual 或 classifier
	Confidence float64 `gorm:"default:0" json:"confidence"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

package model

// Affirmation 每日鼓励短句，按天轮换展示
// swagger:model Affirmation
type Affirmation struct {
	BaseModel
	Content   string `gorm:"type:text;not null" json:"content"`
	IsEnabled bool   `gorm:"default:true" json:"isEnabled"`
}

func (Affirmation) TableName() string {
	return "affirmations"
}

package model

import (
	"time"
)

type UserRole string

const (
	Student   UserRole = "student"
	Counselor UserRole = "counselor"
	Admin     UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"Name"`
	Email     string    `gorm:"size:100;unique;not null" json:"Email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','counselor','admin');default:'student'" json:"Role"`
	College   string    `gorm:"size:150" json:"College"`
	Course    string    `gorm:"size:150" json:"Course"`
	Language  string    `gorm:"size:10;default:'en'" json:"Language"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"Disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"LastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"LastSeen"`
}

func (User) TableName() string {
	return "users"
}

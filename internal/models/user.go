package models

import "time"

type User struct {
	Email         string    `gorm:"type:text;primary_key" json:"email"`
	IsAdmin       bool      `gorm:"not null;default:false" json:"isAdmin"`
	EmailVerified bool      `gorm:"not null;default:false" json:"emailVerified"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

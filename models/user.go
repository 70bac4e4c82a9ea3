package models

import (
	"time"
)

// User is an administrator allowed to obtain API tokens.
type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Username      string         `gorm:"unique;not null;size:150" json:"username"`
	Email         string         `json:"email"`
	Password      string         `gorm:"not null" json:"-"` // bcrypt hash
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	IsStaff       bool           `gorm:"not null;default:false" json:"is_staff"`
	LastLogin     *time.Time     `json:"last_login"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

package models

import (
	"time"
)

// RefreshToken is one login session. The stored token is replaced on every
// refresh, and access tokens carry the session ID so deleting the row logs
// every token of the session out.
type RefreshToken struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `json:"userId" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID"`
	Token          string    `json:"token" gorm:"not null;uniqueIndex"`
	ExpirationDate time.Time `json:"expiry" gorm:"not null"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpirationDate)
}

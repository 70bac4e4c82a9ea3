package models

import (
	"time"
)

// Link is a related site or social network that can be attached to any number of posts.
type Link struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Icon      string    `gorm:"not null" json:"icon"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Link) TableName() string { return "links" }

package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string   `gorm:"size:100;not null" json:"title"`
	GroupID    uint     `gorm:"not null;index" json:"group"`
	Group      Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID uint     `gorm:"not null;index" json:"category"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	DurationID uint     `gorm:"not null;index" json:"-"`
	Duration   Duration `gorm:"foreignKey:DurationID;constraint:OnDelete:CASCADE" json:"-"`
	Text       *string  `gorm:"type:text" json:"text"`
	Links      []Link   `gorm:"many2many:post_links;constraint:OnDelete:CASCADE" json:"links"`
	// Media fields hold storage keys, empty when unset.
	Image     string    `json:"image"`
	Audio     string    `json:"audio"`
	Video     string    `json:"video"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.Audio != "" {
		if err := ValidateAudioExtension(p.Audio); err != nil {
			return err
		}
	}
	if p.Video != "" {
		if err := ValidateVideoExtension(p.Video); err != nil {
			return err
		}
	}
	return nil
}

// HasVideo, HasAudio and HasLinks report media presence for post type derivation.
func (p *Post) HasVideo() bool { return p.Video != "" }
func (p *Post) HasAudio() bool { return p.Audio != "" }
func (p *Post) HasLinks() bool { return len(p.Links) > 0 }

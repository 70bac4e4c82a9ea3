package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Duration is a reading/listening length in minutes shared by many posts.
type Duration struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Value     int       `gorm:"not null;index" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Duration) TableName() string { return "durations" }

func (d Duration) String() string {
	return fmt.Sprintf("%d min", d.Value)
}

func (d *Duration) BeforeSave(tx *gorm.DB) error {
	if d.Value <= 0 {
		return &ValidationError{Field: "value", Message: "duration must be a positive number of minutes"}
	}
	return nil
}

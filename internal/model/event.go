package model

import "time"

type Event struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Campus      string `gorm:"size:64"`
	StartsAt    time.Time `gorm:"not null;index"`
	CreatedBy   uint64    `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

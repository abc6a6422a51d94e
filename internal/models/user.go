package models

import "time"

// User is an account that owns SWOT items, tasks, and a streak.
// Authentication lives outside this service; the HTTP layer identifies
// the acting user by ID.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []SWOTItem `gorm:"foreignKey:OwnerID"`
	Tasks []Task     `gorm:"foreignKey:OwnerID"`
}

package models

import "time"

// Streak records consecutive completion days per owner. One row per
// user, created lazily on first completion or first query.
type Streak struct {
	ID      uint `gorm:"primaryKey;autoIncrement"`
	OwnerID uint `gorm:"uniqueIndex;not null"`
	Count   int  `gorm:"default:0"`
	// LastDay is the most recent day a completion was counted. Nil until
	// the first completion.
	LastDay   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}

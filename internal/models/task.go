package models

import "time"

// Task statuses. The transition is one-way: pending → done.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Task is a single dated unit of work derived from a SWOT item. The
// composite unique index on (owner, item, date, label) is what makes
// batch generation idempotent: create-if-absent against it can never
// produce duplicates.
type Task struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	OwnerID uint      `gorm:"not null;uniqueIndex:idx_owner_item_date_label"`
	ItemID  uint      `gorm:"not null;uniqueIndex:idx_owner_item_date_label"`
	Date    time.Time `gorm:"not null;index;uniqueIndex:idx_owner_item_date_label"`
	Label   string    `gorm:"size:255;not null;uniqueIndex:idx_owner_item_date_label"`
	Status  string    `gorm:"size:10;default:pending"`
	// Value is an optional non-negative check-in metric recorded at
	// completion time.
	Value       *float64
	CreatedAt   time.Time
	CompletedAt *time.Time

	Owner User     `gorm:"foreignKey:OwnerID"`
	Item  SWOTItem `gorm:"foreignKey:ItemID"`
}

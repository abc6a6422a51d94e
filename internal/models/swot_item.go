package models

import "time"

// SWOT categories.
const (
	CategoryStrength    = "strength"
	CategoryWeakness    = "weakness"
	CategoryOpportunity = "opportunity"
	CategoryThreat      = "threat"
)

// Recurrence frequencies.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// DowMaskAll selects every weekday (Monday=bit 0 .. Sunday=bit 6).
// A zero mask is the "unset" sentinel, not "no days": weekly items with
// a zero mask fall back to their creation weekday.
const DowMaskAll = 0b1111111

// SWOTItem is a recurring commitment tagged as strength, weakness,
// opportunity, or threat. Its recurrence rule decides on which dates a
// task is derived from it.
type SWOTItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	OwnerID     uint   `gorm:"index;not null"`
	Category    string `gorm:"size:16;not null"`
	Description string `gorm:"size:255;not null"`
	Frequency   string `gorm:"size:12;not null"`
	// DowMask is a 7-bit weekday selection for weekly items.
	DowMask int `gorm:"default:127"`
	// MonthDay is the day of month (1..31) for monthly/quarterly items.
	// When nil, the creation day anchors the rule. Days past the end of a
	// short month simply never fire in that month.
	MonthDay  *int
	Active    bool `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User   `gorm:"foreignKey:OwnerID"`
	Tasks []Task `gorm:"foreignKey:ItemID"`
}

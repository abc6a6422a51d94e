// Package streak maintains per-owner consecutive-day completion streaks.
//
// The state machine reacts only to completion events: a day counts once,
// a completion on the day after the last counted day increments, and any
// larger gap restarts the count at one. Time passing without events never
// mutates the record.
package streak

import (
	"fmt"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/models"
	"github.com/Abdudhi100/swot-coach/internal/recur"
	"gorm.io/gorm"
)

// Record advances the owner's streak for a completion on today. The
// read-modify-write runs in one transaction so concurrent completions by
// the same owner on the same day converge to a single increment.
func Record(db *gorm.DB, ownerID uint, today time.Time) (*models.Streak, error) {
	today = recur.DateOnly(today)

	var s models.Streak
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Streak{OwnerID: ownerID}).FirstOrCreate(&s).Error; err != nil {
			return fmt.Errorf("streak: get or create for owner %d: %w", ownerID, err)
		}

		if s.LastDay != nil && recur.DateOnly(*s.LastDay).Equal(today) {
			// Already counted today.
			return nil
		}

		if s.LastDay != nil && recur.DateOnly(*s.LastDay).Equal(today.AddDate(0, 0, -1)) {
			s.Count++
		} else {
			s.Count = 1
		}
		day := today
		s.LastDay = &day

		if err := tx.Save(&s).Error; err != nil {
			return fmt.Errorf("streak: save for owner %d: %w", ownerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns the owner's streak, lazily creating the zero record on
// first query.
func Get(db *gorm.DB, ownerID uint) (*models.Streak, error) {
	var s models.Streak
	if err := db.Where(models.Streak{OwnerID: ownerID}).FirstOrCreate(&s).Error; err != nil {
		return nil, fmt.Errorf("streak: get or create for owner %d: %w", ownerID, err)
	}
	return &s, nil
}

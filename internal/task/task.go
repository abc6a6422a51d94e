// Package task implements the pending → done completion state machine
// and task queries.
package task

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/models"
	"github.com/Abdudhi100/swot-coach/internal/recur"
	"github.com/Abdudhi100/swot-coach/internal/streak"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a task does not exist for the owner.
	ErrNotFound = errors.New("task: not found")
	// ErrPastImmutable is returned when mutating a task dated before the
	// reference date.
	ErrPastImmutable = errors.New("task: past tasks are immutable")
	// ErrInvalidValue is returned for a check-in value that is negative
	// or not a number.
	ErrInvalidValue = errors.New("task: check-in value must be a non-negative number")
)

// Get retrieves one of the owner's tasks by ID.
func Get(db *gorm.DB, ownerID, taskID uint) (*models.Task, error) {
	var t models.Task
	if err := db.Where("owner_id = ? AND id = ?", ownerID, taskID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("task: get %d: %w", taskID, err)
	}
	return &t, nil
}

// List returns the owner's tasks, newest date first, then newest created.
// A non-nil date narrows the listing to that calendar day.
func List(db *gorm.DB, ownerID uint, date *time.Time) ([]models.Task, error) {
	q := db.Where("owner_id = ?", ownerID)
	if date != nil {
		q = q.Where("date = ?", recur.DateOnly(*date))
	}
	var tasks []models.Task
	if err := q.Order("date DESC, created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task: list: %w", err)
	}
	return tasks, nil
}

// Complete transitions a task to done as of the reference date today.
//
// Guards, checked before any mutation:
//   - a task dated strictly before today is immutable
//   - an already-done task is returned as-is, with no second streak update
//   - a negative or NaN check-in value rejects the whole completion
//
// On success the status change, completion timestamp, optional value, and
// the owner's streak update commit as one transaction.
func Complete(db *gorm.DB, ownerID, taskID uint, today time.Time, value *float64) (*models.Task, error) {
	today = recur.DateOnly(today)

	if value != nil && (*value < 0 || math.IsNaN(*value)) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidValue, *value)
	}

	t, err := Get(db, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if recur.DateOnly(t.Date).Before(today) {
		return nil, fmt.Errorf("%w: task %d dated %s", ErrPastImmutable, t.ID, t.Date.Format("2006-01-02"))
	}

	if t.Status == models.StatusDone {
		// Completing twice is a no-op reporting current state.
		return t, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		t.Status = models.StatusDone
		t.CompletedAt = &now
		if value != nil {
			t.Value = value
		}
		if err := tx.Save(t).Error; err != nil {
			return fmt.Errorf("task: complete %d: %w", t.ID, err)
		}
		if _, err := streak.Record(tx, ownerID, today); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateOpts holds parameters for creating a task by hand, outside the
// batch generator.
type CreateOpts struct {
	OwnerID uint
	ItemID  uint
	Date    time.Time
	Label   string
}

// Create inserts a manual task under the same rules the generator uses:
// past dates are rejected and an existing (owner, item, date, label) row
// is returned unchanged. The created flag reports whether a new row was
// inserted.
func Create(db *gorm.DB, opts CreateOpts, today time.Time) (*models.Task, bool, error) {
	today = recur.DateOnly(today)
	target := recur.DateOnly(opts.Date)

	if opts.Label == "" {
		return nil, false, fmt.Errorf("task: label is required")
	}
	if target.Before(today) {
		return nil, false, fmt.Errorf("%w: cannot create for %s", ErrPastImmutable, target.Format("2006-01-02"))
	}

	t := models.Task{
		OwnerID: opts.OwnerID,
		ItemID:  opts.ItemID,
		Date:    target,
		Label:   opts.Label,
		Status:  models.StatusPending,
	}
	res := db.Where("owner_id = ? AND item_id = ? AND date = ? AND label = ?",
		t.OwnerID, t.ItemID, t.Date, t.Label).
		FirstOrCreate(&t)
	if res.Error != nil {
		return nil, false, fmt.Errorf("task: create: %w", res.Error)
	}
	return &t, res.RowsAffected > 0, nil
}

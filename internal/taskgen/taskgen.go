// Package taskgen derives pending tasks from active SWOT items for a
// target date. Generation is idempotent: the create-if-absent upsert is
// keyed on (owner, item, date, label), so rerunning a batch for the same
// date never duplicates tasks.
package taskgen

import (
	"fmt"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/models"
	"github.com/Abdudhi100/swot-coach/internal/recur"
	"github.com/Abdudhi100/swot-coach/internal/swot"
	"gorm.io/gorm"
)

// ItemFailure records one item the batch skipped.
type ItemFailure struct {
	ItemID uint
	Err    error
}

// Report summarizes one batch run. Created counts newly inserted tasks;
// tasks that already existed are skipped silently and counted nowhere.
type Report struct {
	Date     time.Time
	Created  int
	Failures []ItemFailure
}

// ForDate generates tasks for all owners' active SWOT items on target.
// A failing item is recorded in the report and skipped; it never aborts
// the batch and leaves no partial state behind. The returned error covers
// only the initial item query.
func ForDate(db *gorm.DB, target time.Time) (Report, error) {
	target = recur.DateOnly(target)
	report := Report{Date: target}

	var items []models.SWOTItem
	if err := db.Preload("Owner").Where("active = ?", true).Find(&items).Error; err != nil {
		return report, fmt.Errorf("taskgen: list active items: %w", err)
	}

	for i := range items {
		created, err := generateOne(db, &items[i], target)
		if err != nil {
			report.Failures = append(report.Failures, ItemFailure{ItemID: items[i].ID, Err: err})
			continue
		}
		report.Created += created
	}
	return report, nil
}

// ForItem generates target's task for a single item, used when a new item
// is registered so its task appears immediately. Returns 1 when a task was
// created, 0 when the item is not due or the task already exists.
func ForItem(db *gorm.DB, item *models.SWOTItem, target time.Time) (int, error) {
	return generateOne(db, item, recur.DateOnly(target))
}

// generateOne evaluates one item against target and upserts its task.
// Panics from rule evaluation are converted to errors so the batch loop
// can treat every item uniformly.
func generateOne(db *gorm.DB, item *models.SWOTItem, target time.Time) (created int, err error) {
	defer func() {
		if r := recover(); r != nil {
			created = 0
			err = fmt.Errorf("taskgen: item %d: panic: %v", item.ID, r)
		}
	}()

	if !recur.IsDue(item, target) {
		return 0, nil
	}

	task := models.Task{
		OwnerID: item.OwnerID,
		ItemID:  item.ID,
		Date:    target,
		Label:   swot.Label(item),
		Status:  models.StatusPending,
	}
	res := db.Where("owner_id = ? AND item_id = ? AND date = ? AND label = ?",
		task.OwnerID, task.ItemID, task.Date, task.Label).
		FirstOrCreate(&task)
	if res.Error != nil {
		return 0, fmt.Errorf("taskgen: item %d: upsert task: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Already generated for this date: success, not counted.
		return 0, nil
	}
	return 1, nil
}

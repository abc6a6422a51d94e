// Package swot provides SWOT item lifecycle operations and task labels.
package swot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Abdudhi100/swot-coach/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an item does not exist for the owner.
var ErrNotFound = errors.New("swot: item not found")

// CreateOpts holds parameters for registering a new SWOT item.
type CreateOpts struct {
	OwnerID     uint
	Category    string // strength, weakness, opportunity, threat
	Description string
	Frequency   string // daily, weekly, monthly, quarterly
	DowMask     *int   // weekly: 7-bit weekday mask, nil selects all days
	MonthDay    *int   // monthly/quarterly: day of month 1..31
}

// validCategories and validFrequencies are the accepted enum values.
var (
	validCategories = map[string]bool{
		models.CategoryStrength:    true,
		models.CategoryWeakness:    true,
		models.CategoryOpportunity: true,
		models.CategoryThreat:      true,
	}
	validFrequencies = map[string]bool{
		models.FrequencyDaily:     true,
		models.FrequencyWeekly:    true,
		models.FrequencyMonthly:   true,
		models.FrequencyQuarterly: true,
	}
)

// Label builds the display label a task derives from its item. Threats
// are phrased as avoidance goals, everything else reads as-is.
func Label(item *models.SWOTItem) string {
	if item.Category == models.CategoryThreat {
		return "avoid: " + item.Description
	}
	return item.Description
}

// Create validates opts and inserts a new active SWOT item.
func Create(db *gorm.DB, opts CreateOpts) (*models.SWOTItem, error) {
	if opts.OwnerID == 0 {
		return nil, fmt.Errorf("swot: owner is required")
	}
	opts.Description = strings.TrimSpace(opts.Description)
	if opts.Description == "" {
		return nil, fmt.Errorf("swot: description is required")
	}
	if !validCategories[opts.Category] {
		return nil, fmt.Errorf("swot: invalid category %q", opts.Category)
	}
	if !validFrequencies[opts.Frequency] {
		return nil, fmt.Errorf("swot: invalid frequency %q", opts.Frequency)
	}

	mask := models.DowMaskAll
	if opts.DowMask != nil {
		// Zero stays zero: it is the "unset" sentinel, which makes weekly
		// items fall back to their creation weekday.
		if *opts.DowMask < 0 || *opts.DowMask > models.DowMaskAll {
			return nil, fmt.Errorf("swot: dow_mask %d out of range 0..%d", *opts.DowMask, models.DowMaskAll)
		}
		mask = *opts.DowMask
	}

	if opts.MonthDay != nil && (*opts.MonthDay < 1 || *opts.MonthDay > 31) {
		return nil, fmt.Errorf("swot: month_day %d out of range 1..31", *opts.MonthDay)
	}

	item := models.SWOTItem{
		OwnerID:     opts.OwnerID,
		Category:    opts.Category,
		Description: opts.Description,
		Frequency:   opts.Frequency,
		DowMask:     mask,
		MonthDay:    opts.MonthDay,
		Active:      true,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("swot: create: %w", err)
	}
	return &item, nil
}

// Get retrieves one of the owner's items by ID.
func Get(db *gorm.DB, ownerID, id uint) (*models.SWOTItem, error) {
	var item models.SWOTItem
	if err := db.Where("owner_id = ? AND id = ?", ownerID, id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("swot: get %d: %w", id, err)
	}
	return &item, nil
}

// List returns the owner's items, newest first. When activeOnly is set,
// deactivated items are filtered out.
func List(db *gorm.DB, ownerID uint, activeOnly bool) ([]models.SWOTItem, error) {
	q := db.Where("owner_id = ?", ownerID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var items []models.SWOTItem
	if err := q.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("swot: list: %w", err)
	}
	return items, nil
}

// UpdateOpts holds the mutable fields of an item. Nil fields are left
// unchanged.
type UpdateOpts struct {
	Description *string
	Frequency   *string
	DowMask     *int
	MonthDay    *int
	Active      *bool
}

// Update applies opts to one of the owner's items.
func Update(db *gorm.DB, ownerID, id uint, opts UpdateOpts) (*models.SWOTItem, error) {
	item, err := Get(db, ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Description != nil {
		desc := strings.TrimSpace(*opts.Description)
		if desc == "" {
			return nil, fmt.Errorf("swot: description is required")
		}
		updates["description"] = desc
	}
	if opts.Frequency != nil {
		if !validFrequencies[*opts.Frequency] {
			return nil, fmt.Errorf("swot: invalid frequency %q", *opts.Frequency)
		}
		updates["frequency"] = *opts.Frequency
	}
	if opts.DowMask != nil {
		if *opts.DowMask < 0 || *opts.DowMask > models.DowMaskAll {
			return nil, fmt.Errorf("swot: dow_mask %d out of range 0..%d", *opts.DowMask, models.DowMaskAll)
		}
		updates["dow_mask"] = *opts.DowMask
	}
	if opts.MonthDay != nil {
		if *opts.MonthDay < 1 || *opts.MonthDay > 31 {
			return nil, fmt.Errorf("swot: month_day %d out of range 1..31", *opts.MonthDay)
		}
		updates["month_day"] = *opts.MonthDay
	}
	if opts.Active != nil {
		updates["active"] = *opts.Active
	}

	if len(updates) == 0 {
		return item, nil
	}
	if err := db.Model(item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("swot: update %d: %w", id, err)
	}
	return item, nil
}

// Deactivate marks an item inactive so the generator skips it. Items are
// never hard-deleted: existing tasks keep their provenance.
func Deactivate(db *gorm.DB, ownerID, id uint) error {
	item, err := Get(db, ownerID, id)
	if err != nil {
		return err
	}
	if err := db.Model(item).Update("active", false).Error; err != nil {
		return fmt.Errorf("swot: deactivate %d: %w", id, err)
	}
	return nil
}

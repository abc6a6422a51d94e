// Package recur evaluates SWOT item recurrence rules against calendar dates.
//
// Everything here is pure date arithmetic: no clocks are sampled and no
// storage is touched, so callers thread an explicit reference date through
// the generation and streak engines.
package recur

import (
	"time"

	"github.com/Abdudhi100/swot-coach/internal/models"
)

// DateOnly strips the clock from t and returns midnight UTC of the same
// calendar day. Task dates and streak days are stored in this form so
// equality and ordering reduce to plain time comparison.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in loc, normalized with DateOnly.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return DateOnly(time.Now().In(loc))
}

// WeekdayIndex maps a date's weekday to the mask bit position:
// Monday=0 .. Sunday=6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// QuarterOf maps months 1-12 to quarters 1-4.
func QuarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// IsDue reports whether item's recurrence rule calls for a task on target.
//
//   - daily: always due.
//   - weekly: due on the weekdays selected by the mask; a zero mask falls
//     back to the item's creation weekday.
//   - monthly: due when the day of month matches MonthDay, or the creation
//     day when MonthDay is unset. No clamping: day 31 never fires in April.
//   - quarterly: the monthly rule, restricted to months in the same
//     quarter as the item's creation month.
//
// Unknown frequencies are never due.
func IsDue(item *models.SWOTItem, target time.Time) bool {
	created := item.CreatedAt

	switch item.Frequency {
	case models.FrequencyDaily:
		return true

	case models.FrequencyWeekly:
		weekday := WeekdayIndex(target)
		if item.DowMask != 0 {
			return (item.DowMask>>weekday)&1 == 1
		}
		return weekday == WeekdayIndex(created)

	case models.FrequencyMonthly:
		return target.Day() == anchorDay(item)

	case models.FrequencyQuarterly:
		return target.Day() == anchorDay(item) &&
			QuarterOf(target.Month()) == QuarterOf(created.Month())

	default:
		return false
	}
}

// anchorDay is the day of month a monthly/quarterly item fires on.
func anchorDay(item *models.SWOTItem) int {
	if item.MonthDay != nil {
		return *item.MonthDay
	}
	return item.CreatedAt.Day()
}

package schedule

import (
	"time"

	"roombook/internal/models"
)

// WeekStart returns the week key for the week containing now: the calendar
// date of that week's Monday, formatted as "2006-01-02". Sunday belongs to
// the week that STARTED six days earlier, matching the Monday-first grid
// ordering.
func WeekStart(now time.Time) string {
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	monday := now.AddDate(0, 0, -offset)
	return monday.Format(models.WeekKeyFormat)
}

package parser

import (
	"fmt"
	"time"
)

// Describe returns a human-readable description of date relative to now
// (e.g., "today", "tomorrow", "in 3 days", "Monday")
func Describe(date time.Time, now time.Time) string {
	// Normalize to start of day for comparison
	nowStart := startOfDay(now)
	dateStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	daysDiff := int(dateStart.Sub(nowStart).Hours() / 24)

	switch daysDiff {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	case 2, 3, 4, 5, 6:
		// For dates within the next week (but not today/tomorrow), show weekday
		return date.Weekday().String()
	}

	if daysDiff >= 7 && daysDiff < 28 {
		weeks := daysDiff / 7
		if weeks == 1 {
			return "in 1 week"
		}
		return fmt.Sprintf("in %d weeks", weeks)
	}

	if daysDiff < 0 && daysDiff > -7 {
		return fmt.Sprintf("%d days ago", -daysDiff)
	}

	// Anything further out shows the formatted date
	return date.Format("Jan 2, 2006")
}

package common

import (
	"time"

	"github.com/researchaccelerator-hub/tuberay/model/youtube"
)

// PublishedAfter resolves a recency period to an absolute lower bound relative to now.
// The second return value is false when the period is unbounded ("all" or unknown).
// Month and year are fixed 30 and 365 day windows, not calendar arithmetic.
func PublishedAfter(period youtube.Period, now time.Time) (time.Time, bool) {
	switch period {
	case youtube.PeriodHour:
		return now.Add(-time.Hour), true
	case youtube.PeriodToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case youtube.PeriodWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case youtube.PeriodMonth:
		return now.Add(-30 * 24 * time.Hour), true
	case youtube.PeriodYear:
		return now.Add(-365 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

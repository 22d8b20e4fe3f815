package domain

import (
	"time"

	"github.com/janjikita/booking-service/pkg/types"
)

// Weekday is a named day of week. Operating hours are stored per weekday,
// not per calendar date.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all seven days in calendar order starting Monday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a calendar date to its named weekday.
func WeekdayOf(date time.Time) Weekday {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ValidWeekday reports whether s names a day of week.
func ValidWeekday(s string) bool {
	for _, d := range Weekdays {
		if Weekday(s) == d {
			return true
		}
	}
	return false
}

// OperatingHours is the open/close window of one business on one weekday.
// At most one row exists per (business, weekday). When IsClosed is set the
// open/close times are ignored.
type OperatingHours struct {
	ID         string
	BusinessID string
	DayOfWeek  Weekday
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	IsClosed   bool
}

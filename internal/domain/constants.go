package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotIntervalMinutes is the fixed cadence of candidate start times. It is
// independent of service duration: a 45-minute service still offers
// candidates every 30 minutes and the customer picks one.
const SlotIntervalMinutes = 30

// Validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours
	MinRescheduleReasonLength = 5
	MaxNotesLength            = 500
)

// DayBounds returns the inclusive wall-clock bounds of the calendar day of
// date, in date's location: 00:00:00 through 23:59:59.999999999.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), date.Location())
	return start, end
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateInPast reports whether date's calendar day is before now's.
func DateInPast(date, now time.Time) bool {
	dateStart, _ := DayBounds(date)
	nowStart, _ := DayBounds(now)
	return dateStart.Before(nowStart)
}

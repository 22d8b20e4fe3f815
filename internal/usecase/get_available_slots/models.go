package get_available_slots

import (
	"time"

	"github.com/janjikita/booking-service/internal/domain"
)

// Request asks for the bookable slots of one service on one date.
// StaffID narrows the check to one staff member; when nil a slot is
// available if anyone on the active roster is free.
type Request struct {
	BusinessID string
	ServiceID  string
	Date       time.Time // calendar date; the time-of-day part is ignored
	StaffID    *string
}

// Response lists the candidate start times of the day, each tagged with
// availability. An empty list means the business is closed that day,
// the service is unknown, or the date is in the past.
type Response struct {
	BusinessID string
	ServiceID  string
	Date       time.Time
	Slots      []domain.TimeSlot
}

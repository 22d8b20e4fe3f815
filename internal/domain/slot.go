package domain

import "github.com/janjikita/booking-service/pkg/types"

// TimeSlot is one candidate start time for a booking, tagged with
// availability. Times are wall-clock in the business's local day.
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}

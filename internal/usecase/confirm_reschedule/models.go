package confirm_reschedule

import "time"

// Request moves an appointment to a new interval on the customer's
// confirmation. When NewStartTime is nil the business's suggested slot
// is used; when NewEndTime is nil the original duration is kept.
type Request struct {
	AppointmentID string
	NewStartTime  *time.Time
	NewEndTime    *time.Time
}

// Response is the moved appointment. All four reschedule negotiation
// fields are cleared and the status is confirmed.
type Response struct {
	ID            string
	BusinessID    string
	ServiceID     string
	StaffID       string
	CustomerName  string
	CustomerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
}

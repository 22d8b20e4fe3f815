package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// PaymentStatus tracks payment progress for an appointment.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is the central entity: one customer booking of one service
// with one staff member. Its service/staff/business linkage is immutable
// after creation; only time, status and reschedule fields mutate.
// Appointments are never hard-deleted.
type Appointment struct {
	ID            string
	BusinessID    string
	ServiceID     string
	StaffID       string
	CustomerID    *string
	CustomerName  string
	CustomerPhone string

	StartTime time.Time
	EndTime   time.Time // start + service duration at booking time, never recomputed
	Status    AppointmentStatus
	Notes     *string

	TotalPrice    int64 // snapshot of the service price at booking time
	PaymentStatus PaymentStatus

	// Reschedule negotiation sub-state. All four fields are cleared when the
	// customer confirms a new slot.
	RescheduleRequestedAt *time.Time
	RescheduleReason      *string
	SuggestedSlot         *time.Time
	SuggestedSlotMessage  *string

	CreatedAt time.Time
}

// IsActive reports whether the appointment blocks its time interval.
// Only cancelled appointments release their slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal reports whether the appointment reached a final state.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanTransitionTo reports whether a status change is allowed. Terminal
// states admit no further transitions; everything else is permissive.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return a.Status == next
	}
	return true
}

// Overlaps reports whether the appointment's [start, end) interval
// intersects the given one. Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndTime) && end.After(a.StartTime)
}

// HasRescheduleRequest reports whether a customer asked to move this
// appointment and the request is still open.
func (a *Appointment) HasRescheduleRequest() bool {
	return a.RescheduleRequestedAt != nil
}

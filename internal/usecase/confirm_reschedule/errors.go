package confirm_reschedule

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment matches the id.
	ErrAppointmentNotFound = errors.New("confirm_reschedule: appointment not found")

	// ErrNoSuggestedSlot is returned when the business has not suggested
	// a new slot yet.
	ErrNoSuggestedSlot = errors.New("confirm_reschedule: no suggested slot to confirm")

	// ErrTerminalStatus is returned when the appointment is already
	// cancelled or completed.
	ErrTerminalStatus = errors.New("confirm_reschedule: appointment is in a terminal status")

	// ErrSlotNotAvailable is returned when the suggested slot was taken
	// between suggestion and confirmation.
	ErrSlotNotAvailable = errors.New("confirm_reschedule: suggested slot is no longer available")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("confirm_reschedule: invalid input data")

	// ErrInternal is returned on unexpected failures inside the use case.
	ErrInternal = errors.New("confirm_reschedule: internal error")
)

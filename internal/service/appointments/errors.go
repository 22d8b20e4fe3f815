package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment matches the id.
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrTerminalStatus is returned when mutating a cancelled or
	// completed appointment.
	ErrTerminalStatus = errors.New("appointments.service: appointment is in a terminal status")

	// ErrNoRescheduleRequest is returned when suggesting a slot for an
	// appointment without an open reschedule request.
	ErrNoRescheduleRequest = errors.New("appointments.service: no open reschedule request")

	// ErrInvalidStatus is returned on an unknown status value.
	ErrInvalidStatus = errors.New("appointments.service: invalid status")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("appointments.service: invalid input data")

	// ErrInternal is returned on unexpected failures inside the service.
	ErrInternal = errors.New("appointments.service: internal error")
)

package create_appointment

import "errors"

var (
	// ErrBusinessNotFound is returned when the business does not exist or is deactivated.
	ErrBusinessNotFound = errors.New("create_appointment: business not found")

	// ErrServiceNotFound is returned when the service does not exist, is
	// inactive, or belongs to another business.
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound is returned when the requested staff member does
	// not exist, is inactive, or belongs to another business.
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrBusinessClosed is returned when the business is closed on the
	// requested date.
	ErrBusinessClosed = errors.New("create_appointment: business is closed on this date")

	// ErrOutsideOperatingHours is returned when the requested interval
	// does not fit inside the day's open window.
	ErrOutsideOperatingHours = errors.New("create_appointment: time is outside operating hours")

	// ErrSlotNotAvailable is returned when the requested staff member
	// already has an overlapping appointment.
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrNoStaffAvailable is returned when no active staff member is
	// free for the requested interval.
	ErrNoStaffAvailable = errors.New("create_appointment: no staff available for this slot")

	// ErrInvalidDate is returned when the requested start is in the past.
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures inside the use case.
	ErrInternal = errors.New("create_appointment: internal error")
)

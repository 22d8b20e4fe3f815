package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound is returned when the business does not exist or is deactivated.
	ErrBusinessNotFound = errors.New("get_available_slots: business not found")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on unexpected failures inside the use case.
	ErrInternal = errors.New("get_available_slots: internal error")
)

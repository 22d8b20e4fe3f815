package catalog

import "errors"

var (
	// ErrBusinessNotFound is returned when the business does not exist.
	ErrBusinessNotFound = errors.New("catalog.service: business not found")

	// ErrServiceNotFound is returned when the service does not exist or
	// belongs to another business.
	ErrServiceNotFound = errors.New("catalog.service: service not found")

	// ErrStaffNotFound is returned when the staff member does not exist
	// or belongs to another business.
	ErrStaffNotFound = errors.New("catalog.service: staff not found")

	// ErrCapacityExceeded is returned when adding or reactivating a row
	// would push the count of active rows past the tier limit.
	ErrCapacityExceeded = errors.New("catalog.service: subscription tier limit reached")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("catalog.service: invalid input data")

	// ErrInternal is returned on unexpected failures inside the service.
	ErrInternal = errors.New("catalog.service: internal error")
)
